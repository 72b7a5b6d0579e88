package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// FavoriteHandler serves the per-eatery favorite toggle.
type FavoriteHandler struct {
	favorites domain.FavoriteRepository
}

func NewFavoriteHandler(favorites domain.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// HandlePut serves PUT /api/v1/eateries/:id/favorite.
func (h *FavoriteHandler) HandlePut(c *gin.Context) {
	h.setFavorite(c, true)
}

// HandleDelete serves DELETE /api/v1/eateries/:id/favorite. Unfavoriting an
// eatery that was never favorited succeeds.
func (h *FavoriteHandler) HandleDelete(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *FavoriteHandler) setFavorite(c *gin.Context, favorite bool) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid eatery id")
		return
	}

	if err := h.favorites.SetFavorite(ctx, id, favorite); err != nil {
		slog.ErrorContext(ctx, "failed to update favorite",
			slog.Int64("eatery_id", id),
			slog.Bool("favorite", favorite),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eatery_id": id,
		"favorite":  favorite,
	})
}
