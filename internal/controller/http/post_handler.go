package http

import (
	"net/http"

	"snapfeed/internal/usecase"
	"snapfeed/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type UploadRequest struct {
	Caption string `form:"caption" binding:"required"`
}

// Upload godoc
// @Summary      Upload a media post
// @Description  Upload an image or video with a caption. The asset goes to blob storage and the post metadata is recorded only after storage accepts it.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        caption formData string true "Post caption"
// @Param        file formData file true "Media file (image or video)"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload [post]
func (h *PostHandler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caption is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, req.Caption, file)
	if err != nil {
		h.logger.Error("Failed to create post for user %s: %v", userID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Delete a post. Only the owner can delete their own posts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
}
