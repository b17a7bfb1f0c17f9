package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Getinger96/KannMind-Backend/internal/application"
	"github.com/Getinger96/KannMind-Backend/pkg/response"
	"github.com/Getinger96/KannMind-Backend/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.Svc.ListComments(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentPayload(cm))
	}
	response.Success(c, http.StatusOK, out, "comments", nil)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.CreateComment(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, commentPayload(cm), "comment created", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.Svc.DeleteComment(c.Request.Context(), c.GetString("userID"), c.Param("id"), c.Param("commentId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "comment deleted", nil)
}
