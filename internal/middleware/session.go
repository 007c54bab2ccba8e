package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/session"
	"github.com/iliyamo/streamtv/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "streamtv_session"

// Context keys under which the resolved identity is stored. Handlers read
// these via c.Get().
const (
	CtxUsername   = "username"
	CtxCustomerID = "customer_id"
	CtxSessionID  = "session_id"
)

// resolveSession verifies the session cookie's signature and looks the
// session up in the store. Both checks must pass: the token alone is not
// trusted, so a cleared session rejects an otherwise valid cookie.
func resolveSession(c echo.Context, secret string, store session.Store) (session.Identity, string, error) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return session.Identity{}, "", session.ErrNotFound
	}
	sid, _, _, err := utils.ParseSessionToken(secret, ck.Value)
	if err != nil {
		return session.Identity{}, "", err
	}
	id, err := store.Get(c.Request().Context(), sid)
	if err != nil {
		return session.Identity{}, "", err
	}
	return id, sid, nil
}

// LoadSession populates the request context with the customer identity when
// a valid session is present and passes anonymous requests through
// untouched. Catalog routes use it so responses can include per-customer
// details (queue membership) without requiring login.
func LoadSession(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, sid, err := resolveSession(c, secret, store); err == nil {
				c.Set(CtxUsername, id.Username)
				c.Set(CtxCustomerID, id.CustomerID)
				c.Set(CtxSessionID, sid)
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests without a valid session with 401. All
// activity routes sit behind it: anonymous callers never reach the
// handlers.
func RequireSession(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, sid, err := resolveSession(c, secret, store)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
			}
			c.Set(CtxUsername, id.Username)
			c.Set(CtxCustomerID, id.CustomerID)
			c.Set(CtxSessionID, sid)
			return next(c)
		}
	}
}
