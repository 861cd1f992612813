package http

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/models"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "shipy_session"

// sessionToken returns the raw session cookie value, or "" when absent.
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// applyCookie writes m to the response as a Set-Cookie header.
func (h *Handler) applyCookie(w http.ResponseWriter, r *http.Request, m models.CookieMutation) {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies(r),
		SameSite: http.SameSiteLaxMode,
	}

	if m.Clear {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	} else {
		c.Value = m.Value
		c.Expires = m.ExpiresAt
		if maxAge := int(time.Until(m.ExpiresAt).Seconds()); maxAge > 0 {
			c.MaxAge = maxAge
		}
	}

	http.SetCookie(w, c)
}

func (h *Handler) secureCookies(r *http.Request) bool {
	if h.cfg.SecureCookies || r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// clientKey identifies the peer for login throttling. When forwarded headers
// are trusted, RealIP has already replaced RemoteAddr with the client IP.
func clientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return throttle.KeyOrUnknown(addr)
}
