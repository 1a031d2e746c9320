package http

import (
	"net/http"

	"snapfeed/internal/usecase"
	"snapfeed/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// GetFeed godoc
// @Summary      Get the post feed
// @Description  All posts, newest first, annotated with ownership and the owner's email.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.FeedEntry
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")

	entries, err := h.feedUseCase.GetFeed(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to assemble feed for user %s: %v", userID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
