package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Getinger96/KannMind-Backend/internal/application"
	"github.com/Getinger96/KannMind-Backend/pkg/response"
	"github.com/Getinger96/KannMind-Backend/pkg/validation"
)

type BoardHandler struct {
	Svc    *application.BoardService
	Logger *logrus.Logger
}

func NewBoardHandler(svc *application.BoardService, logger *logrus.Logger) *BoardHandler {
	return &BoardHandler{Svc: svc, Logger: logger}
}

type createBoardRequest struct {
	Title     string   `json:"title" binding:"required,boardtitle"`
	MemberIDs []string `json:"member_ids"`
}

type updateBoardRequest struct {
	Title     *string   `json:"title"`
	MemberIDs *[]string `json:"member_ids"`
}

// List returns boards the principal owns or is a member of.
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.Svc.ListBoardsFor(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, boardListPayload(boards), "boards", nil)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.CreateBoard(c.Request.Context(), c.GetString("userID"), req.Title, req.MemberIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, boardPayload(b), "board created", nil)
}

func (h *BoardHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetBoard(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, boardPayload(b), "board", nil)
}

func (h *BoardHandler) Update(c *gin.Context) {
	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.UpdateBoard(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.BoardPatch{
		Title:     req.Title,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, boardPayload(b), "board updated", nil)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteBoard(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "board deleted", nil)
}
