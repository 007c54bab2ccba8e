// This file defines the authenticated activity endpoints: queue management
// and watch tracking. All routes here sit behind RequireSession, so the
// customer identity is always present in context.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/queue"
	"github.com/iliyamo/streamtv/internal/repository"
)

// ActivityHandler bundles the per-customer mutation repositories. Publish,
// when non-nil, sends activity events to the broker; failures there never
// fail the request.
type ActivityHandler struct {
	Queue    *repository.QueueRepo
	Watched  *repository.WatchedRepo
	Shows    *repository.ShowRepo
	Episodes *repository.EpisodeRepo
	Publish  func(ctx context.Context, ev queue.ActivityEvent) error
}

func identityFrom(c echo.Context) (custID, username string) {
	custID, _ = c.Get(middleware.CtxCustomerID).(string)
	username, _ = c.Get(middleware.CtxUsername).(string)
	return custID, username
}

// AddToQueue inserts a queue entry for the show dated today. Duplicate
// entries are allowed; the show page exposes in_queue for callers that want
// to avoid them.
func (h *ActivityHandler) AddToQueue(c echo.Context) error {
	ctx := c.Request().Context()
	custID, username := identityFrom(c)
	showID := c.Param("showID")

	s, err := h.Shows.GetByID(ctx, showID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	today := time.Now().Format("2006-01-02")
	if err := h.Queue.Add(ctx, custID, showID, today); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ActivityEvent{
			Type:       queue.EventShowQueued,
			CustomerID: custID,
			Username:   username,
			ShowID:     s.ShowID,
			ShowTitle:  s.Title,
			Date:       today,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"show_id":     s.ShowID,
		"title":       s.Title,
		"date_queued": today,
	})
}

// GetQueue lists the customer's queued shows.
func (h *ActivityHandler) GetQueue(c echo.Context) error {
	custID, _ := identityFrom(c)
	entries, err := h.Queue.ListByCustomer(c.Request().Context(), custID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if entries == nil {
		entries = []repository.QueueEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": entries})
}

// WatchEpisode records the episode as watched today unless it was already
// recorded today, and returns the show/episode titles for display.
func (h *ActivityHandler) WatchEpisode(c echo.Context) error {
	ctx := c.Request().Context()
	custID, username := identityFrom(c)
	showID := c.Param("showID")
	episodeID := c.Param("episodeID")

	d, err := h.Episodes.GetDetail(ctx, showID, episodeID)
	if err != nil {
		if err == repository.ErrEpisodeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "episode not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	today := time.Now().Format("2006-01-02")
	recorded, err := h.Watched.MarkWatched(ctx, custID, showID, episodeID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if recorded && h.Publish != nil {
		_ = h.Publish(ctx, queue.ActivityEvent{
			Type:         queue.EventEpisodeWatched,
			CustomerID:   custID,
			Username:     username,
			ShowID:       d.ShowID,
			ShowTitle:    d.ShowTitle,
			EpisodeID:    d.EpisodeID,
			EpisodeTitle: d.Title,
			Date:         today,
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_title":    d.ShowTitle,
		"episode_title": d.Title,
		"date":          today,
		"recorded":      recorded,
	})
}

// GetWatchedHistory returns the customer's watch history for a show, one
// row per episode with the most recent watch date.
func (h *ActivityHandler) GetWatchedHistory(c echo.Context) error {
	custID, _ := identityFrom(c)
	rows, err := h.Watched.History(c.Request().Context(), custID, c.Param("showID"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rows == nil {
		rows = []repository.WatchedRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}
