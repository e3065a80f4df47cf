package webserver

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afmlabs/evaldash/internal/auth"
	"github.com/afmlabs/evaldash/internal/gate"
	"github.com/afmlabs/evaldash/internal/observability"
	"github.com/afmlabs/evaldash/internal/webapi"
)

func newTestServer(t *testing.T) (*Server, *observability.Metrics) {
	t.Helper()
	m := observability.New()
	seed := uint64(3)
	srv, err := New(Config{
		NoBrowser: true,
		OpsAddr:   "127.0.0.1:0",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:   m,
		API: webapi.Config{
			Source:      webapi.NewGeneratorSource(nil, &seed, m),
			Credentials: auth.DefaultCredentials(),
		},
		Gate: gate.New(auth.NewVerifier(auth.DefaultCredentials(), true), gate.WithMetrics(m)),
	})
	require.NoError(t, err)
	return srv, m
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@admin.com","password":"admin123"}`))
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestHealthEndpoint_Gated(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, gate.LoginPath, rec.Header().Get("Location"))
}

func TestUnauthenticatedRedirects(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/api/dashboard", "/api/export/severity.csv"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			assert.Equal(t, gate.LoginPath, rec.Header().Get("Location"))
		})
	}
}

func TestMalformedCookieIsCleared(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "!!not-a-session!!"})
	rec := serve(srv.Handler(), req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), auth.CookieName+"=;")
}

func TestLoginPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="login-form"`)

	cookie := login(t, srv.Handler())
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookie)
	rec = serve(srv.Handler(), req)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, gate.DashboardPath, rec.Header().Get("Location"))
}

func TestStaticAssetsArePublic(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/favicon.svg", "/assets/app.css", "/assets/login.js"} {
		rec := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthenticatedDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := login(t, srv.Handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := serve(srv.Handler(), req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!doctype html>")
	assert.Contains(t, rec.Body.String(), "AFM Eval Dashboard")

	req = httptest.NewRequest(http.MethodGet, "/training", nil)
	req.AddCookie(cookie)
	rec = serve(srv.Handler(), req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="view"`)

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard?domain=coding", nil)
	req.AddCookie(cookie)
	rec = serve(srv.Handler(), req)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "kpis")
}

func TestUnknownAPIRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := login(t, srv.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	req.AddCookie(cookie)
	rec := serve(srv.Handler(), req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGzipResponses(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := login(t, srv.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(cookie)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(srv.Handler(), req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/login", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = serve(srv.Handler(), req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = serve(srv.Handler(), req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestOpsHandler(t *testing.T) {
	srv, m := newTestServer(t)
	serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/", nil))
	m.Login("success")

	ops := srv.OpsHandler()
	require.NotNil(t, ops)

	rec := serve(ops, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = serve(ops, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "evaldash_gate_decisions_total")
	assert.Contains(t, rec.Body.String(), "evaldash_logins_total")
}

func TestOpsDisabled(t *testing.T) {
	srv, err := New(Config{NoBrowser: true})
	require.NoError(t, err)
	assert.Nil(t, srv.OpsHandler())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, err := New(Config{
		Port:      38917,
		NoBrowser: true,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
