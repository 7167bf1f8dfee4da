package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionCookie writes and clears the session cookie. In production the
// cookie is Secure with SameSite=None (the UI lives on another origin);
// everywhere else it is plain with SameSite=Strict.
type SessionCookie struct {
	secure bool
	maxAge int
}

func NewSessionCookie(production bool, ttl time.Duration) *SessionCookie {
	return &SessionCookie{secure: production, maxAge: int(ttl.Seconds())}
}

func (s *SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(SessionCookieName, token, s.maxAge, "/", "", s.secure, true)
}

// Clear expires the cookie using the same attributes it was set with.
func (s *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(SessionCookieName, "", -1, "/", "", s.secure, true)
}

func (s *SessionCookie) sameSite() http.SameSite {
	if s.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
