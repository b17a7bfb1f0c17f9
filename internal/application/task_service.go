package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/Getinger96/KannMind-Backend/internal/domain/authz"
	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	repo "github.com/Getinger96/KannMind-Backend/internal/domain/repository"
)

const (
	maxTaskTitleLen       = 30
	maxTaskDescriptionLen = 500
)

// TaskService orchestrates task CRUD. Assignee/reviewer membership is
// checked here for a clean validation error and re-checked by the
// repository inside the write transaction.
type TaskService struct {
	Tasks        repo.TaskRepository
	Boards       repo.BoardRepository
	Engine       *authz.Engine
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTasksIndex string
}

func NewTaskService(tasks repo.TaskRepository, boards repo.BoardRepository, engine *authz.Engine, logger *logrus.Logger, es *elasticsearch.Client, esTasksIndex string) *TaskService {
	return &TaskService{Tasks: tasks, Boards: boards, Engine: engine, Logger: logger, ES: es, ESTasksIndex: esTasksIndex}
}

type CreateTaskInput struct {
	BoardID     string
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     time.Time
	AssigneeIDs []string
	ReviewerIDs []string
}

func (s *TaskService) CreateTask(ctx context.Context, principal string, in CreateTaskInput) (*entity.Task, error) {
	board, err := s.Boards.GetByID(ctx, in.BoardID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, invalid("board", "unknown board id")
		}
		return nil, err
	}
	if d := s.Engine.CanCreateTask(principal, board); !d.Allowed {
		return nil, denied(d.Reason)
	}

	t := &entity.Task{
		BoardID:     board.ID,
		OwnerID:     principal,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
		AssigneeIDs: dedupe(in.AssigneeIDs),
		ReviewerIDs: dedupe(in.ReviewerIDs),
	}
	if err := validateTaskFields(t, in.Priority, in.Status); err != nil {
		return nil, err
	}
	if err := s.checkAssignments(board, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return nil, err
	}

	if err := s.Tasks.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrAssigneeNotMember) {
			return nil, invalid("assignees", err.Error())
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "board_id": t.BoardID, "owner_id": principal}).Info("task created")
	}
	s.indexTask(ctx, t)
	return t, nil
}

type TaskPatch struct {
	BoardID     *string
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *time.Time
	AssigneeIDs *[]string
	ReviewerIDs *[]string
}

// UpdateTask applies a partial update. A patch naming a different board
// is rejected as a validation error before any authorization outcome;
// the board reference is immutable for everyone, the board owner
// included.
func (s *TaskService) UpdateTask(ctx context.Context, principal, taskID string, patch TaskPatch) (*entity.Task, error) {
	t, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if patch.BoardID != nil && *patch.BoardID != t.BoardID {
		return nil, invalid("board", "board reference is immutable")
	}

	board, err := s.Boards.GetByID(ctx, t.BoardID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanUpdateTask(principal, t, board); !d.Allowed {
		return nil, denied(d.Reason)
	}

	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.AssigneeIDs != nil {
		t.AssigneeIDs = dedupe(*patch.AssigneeIDs)
	}
	if patch.ReviewerIDs != nil {
		t.ReviewerIDs = dedupe(*patch.ReviewerIDs)
	}
	priority, status := string(t.Priority), string(t.Status)
	if patch.Priority != nil {
		priority = *patch.Priority
	}
	if patch.Status != nil {
		status = *patch.Status
	}
	if err := validateTaskFields(t, priority, status); err != nil {
		return nil, err
	}
	if err := s.checkAssignments(board, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return nil, err
	}

	if err := s.Tasks.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repo.ErrAssigneeNotMember):
			return nil, invalid("assignees", err.Error())
		}
		return nil, err
	}
	s.indexTask(ctx, t)
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, principal, taskID string) error {
	t, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	board, err := s.Boards.GetByID(ctx, t.BoardID)
	if err != nil {
		return err
	}
	if d := s.Engine.CanDeleteTask(principal, t, board); !d.Allowed {
		return denied(d.Reason)
	}
	if err := s.Tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteTaskDoc(ctx, taskID)
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, principal, taskID string) (*entity.Task, error) {
	t, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	board, err := s.Boards.GetByID(ctx, t.BoardID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanReadTask(principal, t, board); !d.Allowed {
		return nil, denied(d.Reason)
	}
	return t, nil
}

func (s *TaskService) ListTasksOnBoard(ctx context.Context, principal, boardID string) ([]*entity.Task, error) {
	board, err := s.Boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d := s.Engine.CanReadBoard(principal, board); !d.Allowed {
		return nil, denied(d.Reason)
	}
	return s.Tasks.ListByBoard(ctx, boardID)
}

func (s *TaskService) ListTasksAssignedTo(ctx context.Context, principal string) ([]*entity.Task, error) {
	return s.Tasks.ListAssignedTo(ctx, principal)
}

func (s *TaskService) ListTasksReviewedBy(ctx context.Context, principal string) ([]*entity.Task, error) {
	return s.Tasks.ListReviewedBy(ctx, principal)
}

// SearchTasks queries the task index on title/description, limited to
// boards the principal holds authority over so search can never widen
// read access.
func (s *TaskService) SearchTasks(ctx context.Context, principal, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	summaries, err := s.Boards.ListForUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return []map[string]any{}, nil
	}
	boardIDs := make([]string, 0, len(summaries))
	for _, b := range summaries {
		boardIDs = append(boardIDs, b.ID)
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"terms": map[string]any{"board_id": boardIDs},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESTasksIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *TaskService) loadTask(ctx context.Context, taskID string) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) checkAssignments(board *entity.Board, assignees, reviewers []string) error {
	for _, id := range assignees {
		if d := s.Engine.CanAssignUser(id, board); !d.Allowed {
			return invalid("assignees", d.Reason)
		}
	}
	for _, id := range reviewers {
		if d := s.Engine.CanAssignUser(id, board); !d.Allowed {
			return invalid("reviewers", d.Reason)
		}
	}
	return nil
}

func validateTaskFields(t *entity.Task, priority, status string) error {
	if t.Title == "" {
		return invalid("title", "is required")
	}
	if utf8.RuneCountInString(t.Title) > maxTaskTitleLen {
		return invalid("title", "must be at most 30 characters long")
	}
	if utf8.RuneCountInString(t.Description) > maxTaskDescriptionLen {
		return invalid("description", "must be at most 500 characters long")
	}
	p, ok := entity.ParsePriority(priority)
	if !ok {
		return invalid("priority", "must be one of LOW, MEDIUM, HIGH")
	}
	st, ok := entity.ParseStatus(status)
	if !ok {
		return invalid("status", "must be one of TO_DO, IN_PROGRESS, IN_REVIEW, FINISHED")
	}
	t.Priority = p
	t.Status = st
	return nil
}

func (s *TaskService) indexTask(ctx context.Context, t *entity.Task) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"board_id":    t.BoardID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"status":      t.Status,
		"due_date":    t.DueDate.Format(time.RFC3339),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTasksIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("task_id", t.ID).Warn("es index response error")
	}
}

func (s *TaskService) deleteTaskDoc(ctx context.Context, taskID string) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTasksIndex, DocumentID: taskID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", taskID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
