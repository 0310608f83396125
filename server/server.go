package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/taskcart/taskcart/accounts"
	"github.com/taskcart/taskcart/auth"
	"github.com/taskcart/taskcart/catalog"
	"github.com/taskcart/taskcart/internal/config"
	"github.com/taskcart/taskcart/orders"
	"github.com/taskcart/taskcart/payments"
	"github.com/taskcart/taskcart/projects"
	"github.com/taskcart/taskcart/token"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Accounts accounts.Repo
	Projects projects.Repo
	Tasks    projects.TaskRepo
	Products catalog.Repo
	Orders   orders.Repo
}

// Server is the thin adapter between the HTTP surface and the domain
// services. Handlers translate requests; the services hold the logic.
type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos
	auth   *auth.Service
	orders *orders.Service
}

func New(cfg config.Config, repos Repos, charger payments.Charger) (*Server, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[Server New] Accounts repo is required")
	}

	secret := cfg.GetSigningSecret()
	if secret == "" {
		if cfg.GetEnv() != "DEV" {
			return nil, errors.New("[Server New] SIGNING_SECRET is required outside DEV")
		}
		secret = "dev-only-signing-secret"
	}

	authOptions := []auth.ServiceOption{}
	if cost := cfg.GetWorkFactor(); cost > 0 {
		authOptions = append(authOptions, auth.WithWorkFactor(cost))
	}
	if n := cfg.GetHashConcurrency(); n > 0 {
		authOptions = append(authOptions, auth.WithHashConcurrency(n))
	}

	authService, err := auth.NewService(repos.Accounts, token.NewHMACSigner(secret), cfg.GetTokenTTL(), authOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create auth service")
	}

	orderService, err := orders.NewService(repos.Orders, repos.Products, charger, orders.WithCurrency(cfg.GetCurrency()))
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create order service")
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
		repos:  repos,
		auth:   authService,
		orders: orderService,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
