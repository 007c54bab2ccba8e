package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/repository"
)

// Search matches the q parameter as a case-insensitive substring against
// show titles and actor names. A blank query is rejected so the caller
// re-prompts instead of listing the whole catalog.
func (h *CatalogHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty search query"})
	}

	shows, people, err := h.Shows.Search(c.Request().Context(), term)
	if err != nil {
		if err == repository.ErrEmptyQuery {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty search query"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if shows == nil {
		shows = []repository.ShowHit{}
	}
	if people == nil {
		people = []repository.ActorHit{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"shows":  shows,
		"people": people,
	})
}
