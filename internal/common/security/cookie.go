package security

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the refresh token.
const RefreshCookieName = "jwt"

// RefreshCookie binds the refresh token to an HTTP-only, secure, cross-site
// cookie. Clearing must reuse the same attributes or the browser's
// cookie-matching rules will keep the old value around.
type RefreshCookie struct {
	Name string
	TTL  time.Duration
}

func NewRefreshCookie(ttl time.Duration) *RefreshCookie {
	return &RefreshCookie{Name: RefreshCookieName, TTL: ttl}
}

func (c *RefreshCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (c *RefreshCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (c *RefreshCookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
