package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customers-viewer/internal/session"
)

// SessionCookieName is name of cookie holding visitor session id
const SessionCookieName = "sid"

const sessionContextKey = "session"

// Session attaches visitor session to the request, new session is started if cookie is missing or expired
func Session(registry *session.Registry, idleTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sess *session.Session
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				sess, _ = registry.Get(cookie.Value)
			}

			if sess == nil {
				sess = registry.Create()
			}

			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(idleTimeout.Seconds()),
			})
			c.Set(sessionContextKey, sess)

			return next(c)
		}
	}
}

// SessionFrom returns session attached by Session middleware
func SessionFrom(c echo.Context) *session.Session {
	sess, ok := c.Get(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
