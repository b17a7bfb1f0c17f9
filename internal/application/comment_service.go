package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Getinger96/KannMind-Backend/internal/domain/authz"
	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	repo "github.com/Getinger96/KannMind-Backend/internal/domain/repository"
)

const maxCommentContentLen = 1000

// CommentService orchestrates comment operations. Authority over a
// comment is authority over its task's board; deletion alone is scoped
// to the author.
type CommentService struct {
	Comments repo.CommentRepository
	Tasks    repo.TaskRepository
	Boards   repo.BoardRepository
	Engine   *authz.Engine
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, tasks repo.TaskRepository, boards repo.BoardRepository, engine *authz.Engine, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Tasks: tasks, Boards: boards, Engine: engine, Logger: logger}
}

func (s *CommentService) ListComments(ctx context.Context, principal, taskID string) ([]*entity.Comment, error) {
	task, board, err := s.loadScope(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanListComments(principal, task, board); !d.Allowed {
		return nil, denied(d.Reason)
	}
	return s.Comments.ListByTask(ctx, taskID)
}

func (s *CommentService) CreateComment(ctx context.Context, principal, taskID, content string) (*entity.Comment, error) {
	task, board, err := s.loadScope(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanCreateComment(principal, task, board); !d.Allowed {
		return nil, denied(d.Reason)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "is required")
	}
	if utf8.RuneCountInString(content) > maxCommentContentLen {
		return nil, invalid("content", "must be at most 1000 characters long")
	}

	c := &entity.Comment{TaskID: taskID, AuthorID: principal, Content: content}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"comment_id": c.ID, "task_id": taskID}).Info("comment created")
	}
	return c, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, principal, taskID, commentID string) error {
	if _, _, err := s.loadScope(ctx, taskID); err != nil {
		return err
	}
	c, err := s.Comments.GetByID(ctx, taskID, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d := s.Engine.CanDeleteComment(principal, c); !d.Allowed {
		return denied(d.Reason)
	}
	if err := s.Comments.Delete(ctx, taskID, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *CommentService) loadScope(ctx context.Context, taskID string) (*entity.Task, *entity.Board, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	board, err := s.Boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return task, board, nil
}
