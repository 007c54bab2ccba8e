package middleware

// identity.go defines helpers shared across middleware files. currentUserID
// pulls the customer ID placed in context by the session middleware; it
// feeds the cache and rate-limit key builders so per-customer responses and
// budgets stay separate.

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated customer ID, or "guest" when the
// request carries no session.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get(CtxCustomerID).(string); ok && v != "" {
		return v
	}
	return "guest"
}
