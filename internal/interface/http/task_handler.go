package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Getinger96/KannMind-Backend/internal/application"
	"github.com/Getinger96/KannMind-Backend/pkg/response"
	"github.com/Getinger96/KannMind-Backend/pkg/validation"
)

const dueDateLayout = "2006-01-02"

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Board       string   `json:"board" binding:"required"`
	Title       string   `json:"title" binding:"required,max=30"`
	Description string   `json:"description" binding:"max=500"`
	Priority    string   `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	Status      string   `json:"status" binding:"required,oneof=TO_DO IN_PROGRESS IN_REVIEW FINISHED"`
	DueDate     string   `json:"due_date" binding:"required,datetime=2006-01-02"`
	AssigneeIDs []string `json:"assignee_ids"`
	ReviewerIDs []string `json:"reviewer_ids"`
}

type updateTaskRequest struct {
	Board       *string   `json:"board"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Status      *string   `json:"status"`
	DueDate     *string   `json:"due_date"`
	AssigneeIDs *[]string `json:"assignee_ids"`
	ReviewerIDs *[]string `json:"reviewer_ids"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	due, _ := time.Parse(dueDateLayout, req.DueDate)
	t, err := h.Svc.CreateTask(c.Request.Context(), c.GetString("userID"), application.CreateTaskInput{
		BoardID:     req.Board,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     due,
		AssigneeIDs: req.AssigneeIDs,
		ReviewerIDs: req.ReviewerIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, taskPayload(t), "task created", nil)
}

func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.Svc.GetTask(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskPayload(t), "task", nil)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := application.TaskPatch{
		BoardID:     req.Board,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeIDs: req.AssigneeIDs,
		ReviewerIDs: req.ReviewerIDs,
	}
	if req.DueDate != nil {
		due, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"due_date": "must be a valid date in format 2006-01-02"})
			return
		}
		patch.DueDate = &due
	}
	t, err := h.Svc.UpdateTask(c.Request.Context(), c.GetString("userID"), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskPayload(t), "task updated", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteTask(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "task deleted", nil)
}

// ListByBoard serves GET /tasks?board=<id>.
func (h *TaskHandler) ListByBoard(c *gin.Context) {
	boardID := c.Query("board")
	if boardID == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"board": "is required"})
		return
	}
	tasks, err := h.Svc.ListTasksOnBoard(c.Request.Context(), c.GetString("userID"), boardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskListPayload(tasks), "tasks", nil)
}

func (h *TaskHandler) AssignedToMe(c *gin.Context) {
	tasks, err := h.Svc.ListTasksAssignedTo(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskListPayload(tasks), "tasks assigned to me", nil)
}

func (h *TaskHandler) Reviewing(c *gin.Context) {
	tasks, err := h.Svc.ListTasksReviewedBy(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskListPayload(tasks), "tasks in review by me", nil)
}

// Search queries the task index, scoped to the principal's boards.
func (h *TaskHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	hits, err := h.Svc.SearchTasks(c.Request.Context(), c.GetString("userID"), q, 10)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
