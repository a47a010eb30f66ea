package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"atelier/internal/config"
	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstreamCalls counts requests per endpoint so tests can assert that
// local validation short-circuits before anything goes over the wire.
type upstreamCalls struct {
	registrations atomic.Int32
	evaluations   atomic.Int32
}

// fakeUpstream stands in for the remote store API.
func fakeUpstream(t *testing.T, approved bool, calls *upstreamCalls) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Identity{
			Token: "tok-123",
			User:  &models.User{ID: 7, Name: "Ana", Email: "ana@example.com", Role: models.RoleCustomer, IsApproved: approved},
		})
	})
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		calls.registrations.Add(1)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "registered"})
	})
	mux.HandleFunc("/api/request-evaluation", func(w http.ResponseWriter, r *http.Request) {
		calls.evaluations.Add(1)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Collection{
			{ID: 1, Slug: "ternos-formais", NamePT: "Ternos Formais", NameEN: "Formal Suits"},
		})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Product{
			{ID: 10, Name: "Terno Clássico", Price: 349900, Collection: "Formal Suits"},
		})
	})
	mux.HandleFunc("/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/s/abc"})
	})

	return httptest.NewServer(mux)
}

type env struct {
	server *httptest.Server
	client *http.Client
	calls  *upstreamCalls
}

func newEnv(t *testing.T, approved bool) *env {
	t.Helper()

	calls := &upstreamCalls{}
	upstreamServer := fakeUpstream(t, approved, calls)
	t.Cleanup(upstreamServer.Close)

	cfg := config.Config{
		Port:          "0",
		UpstreamURL:   upstreamServer.URL,
		SessionSecret: "test-secret",
		Locale:        "pt",
	}
	r := SetupRouter(cfg, storage.NewMemoryStore(), zerolog.Nop())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &env{
		server: server,
		calls:  calls,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *env) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (e *env) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := e.client.Post(e.server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func (e *env) login(t *testing.T) {
	t.Helper()
	resp := e.postJSON(t, "/api/v1/auth/login", models.LoginRequest{Email: "ana@example.com", Password: "secret"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnonymousRouting(t *testing.T) {
	e := newEnv(t, true)

	resp := e.get(t, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "anonymous visitor may see the login page")
	resp.Body.Close()

	resp = e.get(t, "/profile")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = e.get(t, "/collections/ternos-formais")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestApprovedCustomerRouting(t *testing.T) {
	e := newEnv(t, true)
	e.login(t)

	resp := e.get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "authenticated visitors are sent away from auth pages")
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = e.get(t, "/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = e.get(t, "/collections/ternos-formais")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved struct {
		Collection *models.Collection `json:"collection"`
		Products   []models.Product   `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resolved))
	resp.Body.Close()
	require.NotNil(t, resolved.Collection)
	assert.Equal(t, "ternos-formais", resolved.Collection.Slug)
	assert.Len(t, resolved.Products, 1)
}

func TestPendingApprovalIsKeptOutOfCollections(t *testing.T) {
	e := newEnv(t, false)
	e.login(t)

	resp := e.get(t, "/collections/ternos-formais")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = e.get(t, "/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "profile only needs authentication")
	resp.Body.Close()
}

func TestRegisterRequiresMatchingConfirmation(t *testing.T) {
	e := newEnv(t, true)

	resp := e.postJSON(t, "/api/v1/auth/register", models.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "omitting the confirmation is a mismatch")
	resp.Body.Close()

	resp = e.postJSON(t, "/api/v1/auth/register", models.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret", ConfirmPassword: "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int32(0), e.calls.registrations.Load(), "rejected registrations never reach the store API")

	resp = e.postJSON(t, "/api/v1/auth/register", models.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret", ConfirmPassword: "secret",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int32(1), e.calls.registrations.Load())
}

func TestEvaluationRequestConfirmationMismatch(t *testing.T) {
	e := newEnv(t, true)

	resp := e.postJSON(t, "/api/v1/request-evaluation", models.EvaluationRequest{
		FullName: "Ana Lima", Email: "ana@example.com", ConfirmEmail: "ana@exmaple.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int32(0), e.calls.evaluations.Load(), "mismatched applications never reach the store API")

	resp = e.postJSON(t, "/api/v1/request-evaluation", models.EvaluationRequest{
		FullName: "Ana Lima", Email: "ana@example.com", ConfirmEmail: "ana@example.com", Style: "classic",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, int32(1), e.calls.evaluations.Load())
}

func TestCartFlow(t *testing.T) {
	e := newEnv(t, true)

	resp := e.postJSON(t, "/api/v1/cart/items", models.AddLineRequest{ID: 10, Name: "Terno Clássico", Price: 349900, Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var added models.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&added))
	resp.Body.Close()
	assert.Equal(t, 2, added.TotalItems)
	assert.Equal(t, int64(699800), added.TotalPrice)
	assert.Equal(t, "R$ 6.998,00", added.TotalPriceDisplay)
	assert.True(t, added.IsOpen, "adding opens the sidebar")

	// Same visitor, fresh request: lines survive, the open flag does not.
	resp = e.get(t, "/api/v1/cart")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	resp.Body.Close()
	assert.Equal(t, added.Items, fetched.Items)
	assert.False(t, fetched.IsOpen)
}

func TestCheckoutFlow(t *testing.T) {
	e := newEnv(t, true)

	resp := e.postJSON(t, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "empty cart never starts a checkout")
	resp.Body.Close()

	resp = e.postJSON(t, "/api/v1/cart/items", models.AddLineRequest{ID: 10, Name: "Terno Clássico", Price: 349900, Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = e.postJSON(t, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://pay.example/s/abc", resp.Header.Get("Location"))
	resp.Body.Close()
}
