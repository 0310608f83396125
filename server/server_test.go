package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskcart/taskcart/accounts"
	fakeaccountrepo "github.com/taskcart/taskcart/accounts/repofake"
	"github.com/taskcart/taskcart/auth"
	fakeproductrepo "github.com/taskcart/taskcart/catalog/repofake"
	"github.com/taskcart/taskcart/internal/config"
	fakeorderrepo "github.com/taskcart/taskcart/orders/repofake"
	fakecharger "github.com/taskcart/taskcart/payments/chargerfake"
	fakeprojectrepo "github.com/taskcart/taskcart/projects/repofake"
	"github.com/taskcart/taskcart/server"
)

type testConfig struct {
	config.Cors
}

func (testConfig) GetPort() string              { return ":8080" }
func (testConfig) GetAppName() string           { return "TaskCart" }
func (testConfig) GetEnv() string               { return "TEST" }
func (testConfig) GetSigningSecret() string     { return "test-signing-secret" }
func (testConfig) GetTokenTTL() time.Duration   { return time.Hour }
func (testConfig) GetWorkFactor() int           { return 4 } // bcrypt.MinCost keeps tests quick
func (testConfig) GetHashConcurrency() int      { return 2 }
func (testConfig) GetDatabaseURL() string       { return "" }
func (testConfig) GetPaymentGatewayURL() string { return "" }
func (testConfig) GetPaymentGatewayKey() string { return "" }
func (testConfig) GetCurrency() string          { return "usd" }

type fixture struct {
	server   *server.Server
	accounts *fakeaccountrepo.FakeAccountRepo
	products *fakeproductrepo.FakeProductRepo
	charger  *fakecharger.FakeCharger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	accountRepo := fakeaccountrepo.NewFakeAccountRepo()
	productRepo := fakeproductrepo.NewFakeProductRepo()
	charger := fakecharger.NewFakeCharger()

	srv, err := server.New(testConfig{}, server.Repos{
		Accounts: accountRepo,
		Projects: fakeprojectrepo.NewFakeProjectRepo(),
		Tasks:    fakeprojectrepo.NewFakeTaskRepo(),
		Products: productRepo,
		Orders:   fakeorderrepo.NewFakeOrderRepo(),
	}, charger)
	require.NoError(t, err)

	return &fixture{
		server:   srv,
		accounts: accountRepo,
		products: productRepo,
		charger:  charger,
	}
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)
	return recorder
}

func (f *fixture) register(t *testing.T, handle, contact, secret string) {
	t.Helper()
	resp := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
		"handle": handle, "contact": contact, "secret": secret,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func (f *fixture) login(t *testing.T, contact, secret string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{
		"contact": contact, "secret": secret,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var session auth.Session
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("creates account and never echoes the secret", func(t *testing.T) {
		f := newFixture(t)

		resp := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
			"handle": "alice", "contact": "alice@example.com", "secret": "S3cret!",
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		var account accounts.Public
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &account))
		require.Equal(t, "alice", account.Handle)
		require.NotEmpty(t, account.ID)
		require.NotContains(t, resp.Body.String(), "S3cret!")
	})

	t.Run("duplicate contact answers 409", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice", "alice@example.com", "S3cret!")

		resp := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
			"handle": "alice2", "contact": "alice@example.com", "secret": "other",
		})
		require.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("invalid contact answers 400", func(t *testing.T) {
		f := newFixture(t)
		resp := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
			"handle": "bob", "contact": "not-an-address", "secret": "S3cret!",
		})
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("issues a token accepted by authenticated routes", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice", "alice@example.com", "S3cret!")
		bearer := f.login(t, "alice@example.com", "S3cret!")

		resp := f.do(t, http.MethodGet, server.RouteMe, bearer, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var account accounts.Public
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &account))
		require.Equal(t, "alice", account.Handle)
	})

	t.Run("wrong secret and unknown contact give the same answer", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice", "alice@example.com", "S3cret!")

		wrongSecret := f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{
			"contact": "alice@example.com", "secret": "nope",
		})
		unknownContact := f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{
			"contact": "ghost@example.com", "secret": "nope",
		})

		require.Equal(t, http.StatusUnauthorized, wrongSecret.Code)
		require.Equal(t, unknownContact.Code, wrongSecret.Code)
		require.JSONEq(t, wrongSecret.Body.String(), unknownContact.Body.String())
	})
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "S3cret!")

	t.Run("missing token answers 401", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, server.RouteMe, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token answers 401", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, server.RouteMe, "not-a-token", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestProjectEndpoints(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "S3cret!")
	f.register(t, "bob", "bob@example.com", "hunter2")
	aliceToken := f.login(t, "alice@example.com", "S3cret!")
	bobToken := f.login(t, "bob@example.com", "hunter2")

	resp := f.do(t, http.MethodPost, server.RouteProjects, aliceToken, map[string]string{
		"name": "Launch", "description": "release checklist",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		ID        string    `json:"id"`
		OwnerID   string    `json:"owner_id"`
		CreatedAt time.Time `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	t.Run("owner reads it back", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "/api/projects/"+created.ID, aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("someone else's project answers not found", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "/api/projects/"+created.ID, bobToken, nil)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("tasks nest under the project", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%s/tasks", created.ID), aliceToken, map[string]string{
			"title": "write release notes",
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		var task struct {
			CreatedAt time.Time `json:"created_at"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
		require.False(t, task.CreatedAt.IsZero())

		resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%s/tasks", created.ID), aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var tasks []struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		require.Equal(t, "write release notes", tasks[0].Title)
	})
}

func TestOrderEndpoints(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "S3cret!")
	bearer := f.login(t, "alice@example.com", "S3cret!")

	resp := f.do(t, http.MethodPost, server.RouteProducts, bearer, map[string]any{
		"name": "mug", "price_cents": 1250, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var product struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &product))
	require.False(t, product.CreatedAt.IsZero())

	t.Run("catalog reads need no token", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, server.RouteProducts, "", nil)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("placing an order charges and prices server-side", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, server.RouteOrders, bearer, map[string]any{
			"lines":      []map[string]any{{"product_id": product.ID, "quantity": 2}},
			"card_token": "tok_visa",
		})
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var order struct {
			TotalCents int64  `json:"total_cents"`
			Status     string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &order))
		require.Equal(t, int64(2500), order.TotalCents)
		require.Equal(t, "paid", order.Status)
	})

	t.Run("declined card answers 402", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, server.RouteOrders, bearer, map[string]any{
			"lines":      []map[string]any{{"product_id": product.ID, "quantity": 1}},
			"card_token": "",
		})
		require.Equal(t, http.StatusPaymentRequired, resp.Code)
	})

	t.Run("unknown product answers 422", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, server.RouteOrders, bearer, map[string]any{
			"lines":      []map[string]any{{"product_id": "missing", "quantity": 1}},
			"card_token": "tok_visa",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}
