// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/handler"
	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/session"
)

// RegisterRoutes registers routes that need no dependencies. Currently it
// exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Register, login and logout
// live under /v1/auth and need no session; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, secret string, store session.Store) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.RequireSession(secret, store))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the read-only browse and search endpoints.
// LoadSession runs first so show pages can report queue membership for
// logged-in customers; anonymous requests pass straight through. Extra
// middleware (the response cache) applies after session resolution so cache
// keys can include the customer.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, secret string, store session.Store, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{middleware.LoadSession(secret, store)}, extra...)
	g := e.Group("/v1", mw...)
	g.GET("/shows/:showID", h.GetShow)
	g.GET("/shows/:showID/episodes", h.GetEpisodes)
	g.GET("/shows/:showID/episodes/:episodeID", h.GetEpisode)
	g.GET("/actors/:actorID", h.GetActor)
	g.GET("/search", h.Search)
}

// RegisterActivity registers the per-customer mutation endpoints. All of
// them require a valid session; anonymous callers get 401.
func RegisterActivity(e *echo.Echo, h *handler.ActivityHandler, secret string, store session.Store) {
	g := e.Group("/v1", middleware.RequireSession(secret, store))
	g.POST("/queue/:showID", h.AddToQueue)
	g.GET("/queue", h.GetQueue)
	g.POST("/shows/:showID/episodes/:episodeID/watch", h.WatchEpisode)
	g.GET("/shows/:showID/watched", h.GetWatchedHistory)
}
