// Package gate guards every route except the login page and the auth API
// behind the session cookie.
package gate

import (
	"net/http"
	"strings"

	"github.com/afmlabs/evaldash/internal/auth"
	"github.com/afmlabs/evaldash/internal/logging"
	"github.com/afmlabs/evaldash/internal/observability"
)

// Paths the gate redirects to.
const (
	LoginPath     = "/login"
	DashboardPath = "/"
)

// PublicPrefixes are reachable without a session.
var PublicPrefixes = []string{"/login", "/api/auth"}

// Decision is the outcome of evaluating one request.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	ClearAndRedirectLogin
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case ClearAndRedirectLogin:
		return "clear_and_redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	}
	return "unknown"
}

// Gate evaluates requests against the session cookie.
type Gate struct {
	verifier *auth.Verifier
	metrics  *observability.Metrics
	secure   bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithMetrics counts every decision.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// WithSecureCookies marks the cleared cookie Secure, for production.
func WithSecureCookies(secure bool) Option {
	return func(g *Gate) { g.secure = secure }
}

// New creates a Gate. A nil verifier accepts any decodable session.
func New(v *auth.Verifier, opts ...Option) *Gate {
	if v == nil {
		v = &auth.Verifier{}
	}
	g := &Gate{verifier: v}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide maps a request path and session cookie value to a decision.
// present distinguishes an absent cookie from an empty one.
func (g *Gate) Decide(path, cookie string, present bool) Decision {
	if isPublic(path) {
		if path == LoginPath && present && g.valid(cookie) {
			return RedirectDashboard
		}
		return Allow
	}
	if isStatic(path) {
		return Allow
	}
	if !present || cookie == "" {
		return RedirectLogin
	}
	if !g.valid(cookie) {
		return ClearAndRedirectLogin
	}
	return Allow
}

func (g *Gate) valid(cookie string) bool {
	_, err := g.verifier.Verify(cookie)
	return err == nil
}

// Decide evaluates path and cookie with the lenient default verifier.
func Decide(path, cookie string, present bool) Decision {
	return New(nil).Decide(path, cookie, present)
}

func isPublic(path string) bool {
	for _, p := range PublicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// isStatic matches embedded assets. API paths never count as static, so a
// dotted API route such as an export filename stays gated.
func isStatic(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return false
	}
	return strings.HasPrefix(path, "/assets/") ||
		strings.HasPrefix(path, "/favicon") ||
		strings.Contains(path, ".")
}

// Middleware applies the decision ahead of next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value, present := "", false
		if c, err := r.Cookie(auth.CookieName); err == nil {
			value, present = c.Value, true
		}

		d := g.Decide(r.URL.Path, value, present)
		g.metrics.GateDecision(d.String())

		logger := logging.FromContext(r.Context())
		switch d {
		case Allow:
			next.ServeHTTP(w, r)
			return
		case RedirectDashboard:
			logger.Debug("session present, leaving login", "path", r.URL.Path)
			http.Redirect(w, r, DashboardPath, http.StatusTemporaryRedirect)
		case ClearAndRedirectLogin:
			logger.Warn("malformed session cookie", "path", r.URL.Path)
			http.SetCookie(w, auth.ClearedCookie(g.secure))
			http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
		case RedirectLogin:
			logger.Debug("no session", "path", r.URL.Path)
			http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
		}
	})
}
