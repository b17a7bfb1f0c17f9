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

const maxBoardTitleLen = 30

// BoardService orchestrates board CRUD: load, authorize through the
// engine, then mutate through the repository. The acting principal is
// an explicit parameter on every operation.
type BoardService struct {
	Boards repo.BoardRepository
	Users  repo.UserRepository
	Engine *authz.Engine
	Logger *logrus.Logger
}

func NewBoardService(boards repo.BoardRepository, users repo.UserRepository, engine *authz.Engine, logger *logrus.Logger) *BoardService {
	return &BoardService{Boards: boards, Users: users, Engine: engine, Logger: logger}
}

func (s *BoardService) ListBoardsFor(ctx context.Context, principal string) ([]*entity.BoardSummary, error) {
	return s.Boards.ListForUser(ctx, principal)
}

func (s *BoardService) CreateBoard(ctx context.Context, principal, title string, memberIDs []string) (*entity.BoardSummary, error) {
	if d := s.Engine.CanCreateBoard(principal); !d.Allowed {
		return nil, denied(d.Reason)
	}
	title = strings.TrimSpace(title)
	if err := validateBoardTitle(title); err != nil {
		return nil, err
	}
	memberIDs = dedupe(memberIDs)
	if err := s.checkMembersExist(ctx, memberIDs); err != nil {
		return nil, err
	}

	b := &entity.Board{Title: title, OwnerID: principal, MemberIDs: memberIDs}
	if err := s.Boards.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"board_id": b.ID, "owner_id": principal}).Info("board created")
	}
	return s.Boards.Summary(ctx, b.ID)
}

func (s *BoardService) GetBoard(ctx context.Context, principal, boardID string) (*entity.BoardSummary, error) {
	b, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanReadBoard(principal, b); !d.Allowed {
		return nil, denied(d.Reason)
	}
	return s.Boards.Summary(ctx, boardID)
}

type BoardPatch struct {
	Title     *string
	MemberIDs *[]string
}

// UpdateBoard changes the title and/or replaces the member set. Removing
// a member deliberately leaves that user's existing task assignments in
// place.
func (s *BoardService) UpdateBoard(ctx context.Context, principal, boardID string, patch BoardPatch) (*entity.BoardSummary, error) {
	b, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if d := s.Engine.CanUpdateBoard(principal, b); !d.Allowed {
		return nil, denied(d.Reason)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateBoardTitle(title); err != nil {
			return nil, err
		}
		b.Title = title
	}
	if patch.MemberIDs != nil {
		members := dedupe(*patch.MemberIDs)
		if err := s.checkMembersExist(ctx, members); err != nil {
			return nil, err
		}
		b.MemberIDs = members
	}
	if err := s.Boards.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Boards.Summary(ctx, boardID)
}

// DeleteBoard cascades through comments and tasks inside one
// transaction. A second delete of the same id observes ErrNotFound.
func (s *BoardService) DeleteBoard(ctx context.Context, principal, boardID string) error {
	b, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if d := s.Engine.CanDeleteBoard(principal, b); !d.Allowed {
		return denied(d.Reason)
	}
	if err := s.Boards.Delete(ctx, boardID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"board_id": boardID, "owner_id": principal}).Info("board deleted")
	}
	return nil
}

func (s *BoardService) loadBoard(ctx context.Context, boardID string) (*entity.Board, error) {
	b, err := s.Boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BoardService) checkMembersExist(ctx context.Context, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}
	ok, err := s.Users.ExistAll(ctx, memberIDs)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("members", "unknown user id")
	}
	return nil
}

func validateBoardTitle(title string) error {
	if title == "" {
		return invalid("title", "is required")
	}
	if utf8.RuneCountInString(title) > maxBoardTitleLen {
		return invalid("title", "must be at most 30 characters long")
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
