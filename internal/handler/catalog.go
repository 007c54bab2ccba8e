// Package handler exposes HTTP handlers for the account, catalog and
// activity endpoints. This file defines the read-only catalog handlers:
// show detail, episode lists, episode detail and actor credits. Catalog
// routes work anonymously; a session only adds per-customer detail such as
// queue membership on the show page.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/repository"
)

// CatalogHandler aggregates the read-only repositories for browsing.
type CatalogHandler struct {
	Shows    *repository.ShowRepo
	Episodes *repository.EpisodeRepo
	Actors   *repository.ActorRepo
	Queue    *repository.QueueRepo
}

// GetShow returns a show with its main and recurring cast. When the caller
// is logged in the response also reports whether the show is in their queue.
func (h *CatalogHandler) GetShow(c echo.Context) error {
	ctx := c.Request().Context()
	showID := c.Param("showID")

	s, err := h.Shows.GetByID(ctx, showID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	mainCast, err := h.Shows.MainCast(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recurring, err := h.Shows.RecurringCast(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := echo.Map{
		"show": echo.Map{
			"show_id":     s.ShowID,
			"title":       s.Title,
			"network":     s.Network,
			"description": s.Description,
		},
		"main_cast":      emptyCast(mainCast),
		"recurring_cast": emptyRecurring(recurring),
	}
	if custID, ok := c.Get(middleware.CtxCustomerID).(string); ok && custID != "" {
		queued, err := h.Queue.IsQueued(ctx, custID, showID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		resp["in_queue"] = queued
	}
	return c.JSON(http.StatusOK, resp)
}

// GetEpisodes lists a show's episodes ordered by air date.
func (h *CatalogHandler) GetEpisodes(c echo.Context) error {
	ctx := c.Request().Context()
	showID := c.Param("showID")

	s, err := h.Shows.GetByID(ctx, showID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	eps, err := h.Episodes.ListByShow(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if eps == nil {
		eps = []repository.Episode{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id":    s.ShowID,
		"show_title": s.Title,
		"items":      eps,
	})
}

// GetEpisode returns one episode with the show's main cast and the
// recurring cast credited on that episode.
func (h *CatalogHandler) GetEpisode(c echo.Context) error {
	ctx := c.Request().Context()
	showID := c.Param("showID")
	episodeID := c.Param("episodeID")

	d, err := h.Episodes.GetDetail(ctx, showID, episodeID)
	if err != nil {
		if err == repository.ErrEpisodeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "episode not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	mainCast, err := h.Shows.MainCast(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recurring, err := h.Episodes.RecurringCast(ctx, showID, episodeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"episode":        d,
		"main_cast":      emptyCast(mainCast),
		"recurring_cast": emptyCast(recurring),
	})
}

// GetActor returns an actor's main and recurring credits as two independent
// lists. Both may be empty.
func (h *CatalogHandler) GetActor(c echo.Context) error {
	ctx := c.Request().Context()
	actorID := c.Param("actorID")

	main, recurring, err := h.Actors.Credits(ctx, actorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if main == nil {
		main = []repository.ActorCredit{}
	}
	if recurring == nil {
		recurring = []repository.ActorCredit{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"main_credits":      main,
		"recurring_credits": recurring,
	})
}

func emptyCast(cast []repository.CastMember) []repository.CastMember {
	if cast == nil {
		return []repository.CastMember{}
	}
	return cast
}

func emptyRecurring(cast []repository.RecurringCastMember) []repository.RecurringCastMember {
	if cast == nil {
		return []repository.RecurringCastMember{}
	}
	return cast
}
