package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/alumni-connect-api/internal/application/auth"
	"github.com/alumni-connect-api/internal/metrics"
	"github.com/alumni-connect-api/internal/transport/http/middleware"
)

// SSOURLs builds the redirect URLs of the single sign-on server.
type SSOURLs interface {
	LoginURL() string
	LogoutURL(redirectURL string) string
}

// AuthHandler handles the CAS login/logout flow and session verification.
type AuthHandler struct {
	svc         auth.Service
	sso         SSOURLs
	redirectURL string
	collector   *metrics.Collector
}

func NewAuthHandler(svc auth.Service, sso SSOURLs, redirectURL string, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{svc: svc, sso: sso, redirectURL: redirectURL, collector: collector}
}

// Login drives the CAS round-trip. Without a ticket the browser is sent to
// the CAS login page; CAS redirects back here with ?ticket=, which is
// exchanged for a session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil && h.svc.IsLoggedIn(c.Value) {
		http.Redirect(w, r, h.nextURL(r), http.StatusFound)
		return
	}

	ticket := r.URL.Query().Get("ticket")
	if ticket == "" {
		http.Redirect(w, r, h.sso.LoginURL(), http.StatusFound)
		return
	}

	result, err := h.svc.LoginWithTicket(r.Context(), ticket)
	if err != nil {
		if h.collector != nil {
			h.collector.RecordLoginFailure()
		}
		writeDomainError(w, err)
		return
	}
	if h.collector != nil {
		h.collector.RecordLogin()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(result.ExpiresIn),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.nextURL(r), http.StatusFound)
}

// Logout sends the browser to the CAS logout page, which calls back into
// LogoutCallback to drop the local session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	callback := "https://" + r.Host + "/v1/auth/logout/callback"
	http.Redirect(w, r, h.sso.LogoutURL(callback), http.StatusFound)
}

func (h *AuthHandler) LogoutCallback(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.redirectURL, http.StatusFound)
}

// Verify returns the claims of the presented token. Runs behind the auth
// middleware, so reaching it means the token already passed verification.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	resp := map[string]interface{}{
		"uid":   claims.UID,
		"email": claims.Email,
		"name":  claims.Name,
	}
	if claims.ExpiresAt != nil {
		resp["expires_at"] = claims.ExpiresAt.Time.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// nextURL returns a safe post-login destination. Only relative paths are
// honored so the login endpoint cannot be used as an open redirect.
func (h *AuthHandler) nextURL(r *http.Request) string {
	next := r.URL.Query().Get("next")
	if next == "" {
		return h.redirectURL
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return h.redirectURL
	}
	return next
}
