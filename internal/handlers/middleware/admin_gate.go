// internal/handlers/middleware/admin_gate.go
package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultAdminCookie names the session cookie when none is configured
const DefaultAdminCookie = "motostock_admin"

// AdminGate is a soft gate in front of the admin routes. It compares a
// single shared password and hands out a per-process session token; it is
// not an authentication system.
type AdminGate struct {
	password   string
	cookieName string
	token      string
}

// NewAdminGate creates a gate. An empty password disables login.
func NewAdminGate(password, cookieName string) *AdminGate {
	if cookieName == "" {
		cookieName = DefaultAdminCookie
	}
	return &AdminGate{
		password:   password,
		cookieName: cookieName,
		token:      uuid.New().String(),
	}
}

// Check reports whether password matches the configured one exactly
func (g *AdminGate) Check(password string) bool {
	return g.password != "" && password == g.password
}

// Token returns the session token issued on login
func (g *AdminGate) Token() string {
	return g.token
}

// Authorized reports whether r carries the session cookie
func (g *AdminGate) Authorized(r *http.Request) bool {
	c, err := r.Cookie(g.cookieName)
	return err == nil && c.Value == g.token
}

// Require rejects requests without the session cookie
func (g *AdminGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Authorized(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie stores the session token on the client. The cookie lasts for
// the browser session; a restart of the API invalidates it.
func (g *AdminGate) SetCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    g.token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie
func (g *AdminGate) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
