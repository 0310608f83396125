package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	fakeaccountrepo "github.com/taskcart/taskcart/accounts/repofake"
	fakeproductrepo "github.com/taskcart/taskcart/catalog/repofake"
	"github.com/taskcart/taskcart/internal/config"
	fakeorderrepo "github.com/taskcart/taskcart/orders/repofake"
	"github.com/taskcart/taskcart/payments"
	fakeprojectrepo "github.com/taskcart/taskcart/projects/repofake"
	"github.com/taskcart/taskcart/server"
	"github.com/taskcart/taskcart/store/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			returnError = errors.Errorf("panic recovered: %v", r)
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	repos, cleanup, err := buildRepos(c)
	if err != nil {
		return errors.Wrap(err, "build repos")
	}
	defer cleanup()

	charger := payments.NewGateway(c.GetPaymentGatewayURL(), c.GetPaymentGatewayKey())

	srv, err := server.New(c, repos, charger)
	if err != nil {
		return errors.Wrap(err, "server.New")
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// buildRepos selects storage by configuration: a postgres pool when
// DATABASE_URL is set, in-memory repositories otherwise.
func buildRepos(c config.Config) (server.Repos, func(), error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Info().Msg("no DATABASE_URL, using in-memory storage")
		return server.Repos{
			Accounts: fakeaccountrepo.NewFakeAccountRepo(),
			Projects: fakeprojectrepo.NewFakeProjectRepo(),
			Tasks:    fakeprojectrepo.NewFakeTaskRepo(),
			Products: fakeproductrepo.NewFakeProductRepo(),
			Orders:   fakeorderrepo.NewFakeOrderRepo(),
		}, func() {}, nil
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return server.Repos{}, nil, errors.Wrap(err, "pgxpool.New")
	}
	log.Info().Msg("using postgres storage")
	return server.Repos{
		Accounts: postgres.NewAccountRepo(pool),
		Projects: postgres.NewProjectRepo(pool),
		Tasks:    postgres.NewTaskRepo(pool),
		Products: postgres.NewProductRepo(pool),
		Orders:   postgres.NewOrderRepo(pool),
	}, pool.Close, nil
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
