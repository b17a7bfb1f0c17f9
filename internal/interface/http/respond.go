package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Getinger96/KannMind-Backend/internal/application"
	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	"github.com/Getinger96/KannMind-Backend/pkg/response"
)

// respondServiceError maps the application error taxonomy onto HTTP
// statuses. Denied is 403, distinct from both unauthenticated (401) and
// not-found (404); validation failures are 400 with field details.
func respondServiceError(c *gin.Context, err error) {
	if de, ok := application.AsDenied(err); ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", de.Reason)
		return
	}
	if ve, ok := application.AsValidation(err); ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", ve.Details)
		return
	}
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "already registered"})
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func boardPayload(s *entity.BoardSummary) gin.H {
	return gin.H{
		"id":                  s.ID,
		"title":               s.Title,
		"owner_id":            s.OwnerID,
		"member_ids":          s.MemberIDs,
		"member_count":        s.MemberCount,
		"ticket_count":        s.TicketCount,
		"high_priority_count": s.HighPriorityCount,
		"tasks_to_do_count":   s.TasksToDoCount,
		"created_at":          s.CreatedAt,
		"updated_at":          s.UpdatedAt,
	}
}

func boardListPayload(boards []*entity.BoardSummary) []gin.H {
	out := make([]gin.H, 0, len(boards))
	for _, b := range boards {
		out = append(out, boardPayload(b))
	}
	return out
}

func taskPayload(t *entity.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"board":       t.BoardID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"status":      t.Status,
		"due_date":    t.DueDate.Format("2006-01-02"),
		"owner_id":    t.OwnerID,
		"assignees":   t.AssigneeIDs,
		"reviewers":   t.ReviewerIDs,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func taskListPayload(tasks []*entity.Task) []gin.H {
	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskPayload(t))
	}
	return out
}

func commentPayload(cm *entity.Comment) gin.H {
	author := cm.AuthorName
	if author == "" {
		author = cm.AuthorID
	}
	return gin.H{
		"id":         cm.ID,
		"author":     author,
		"content":    cm.Content,
		"created_at": cm.CreatedAt,
	}
}
