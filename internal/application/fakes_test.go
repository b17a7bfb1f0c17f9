package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	repo "github.com/Getinger96/KannMind-Backend/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the
// observable behavior of the postgres layer: ErrNotFound on misses,
// write-time assignee re-validation and the ordered board cascade.

type fakeUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) add(id, fullname string) *entity.User {
	u := &entity.User{ID: id, Email: id + "@example.com", Fullname: fullname}
	r.users[id] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) ExistAll(_ context.Context, ids []string) (bool, error) {
	for _, id := range ids {
		if _, ok := r.users[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

type fakeBoardRepo struct {
	boards   map[string]*entity.Board
	tasks    *fakeTaskRepo
	comments *fakeCommentRepo
	seq      int
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: map[string]*entity.Board{}}
}

func (r *fakeBoardRepo) Create(_ context.Context, b *entity.Board) error {
	r.seq++
	b.ID = fmt.Sprintf("b%d", r.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.boards[b.ID] = cloneBoard(b)
	return nil
}

func (r *fakeBoardRepo) GetByID(_ context.Context, id string) (*entity.Board, error) {
	b, ok := r.boards[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneBoard(b), nil
}

func (r *fakeBoardRepo) ListForUser(_ context.Context, userID string) ([]*entity.BoardSummary, error) {
	var out []*entity.BoardSummary
	for _, b := range r.boards {
		if b.HasAuthority(userID) {
			out = append(out, r.summarize(b))
		}
	}
	return out, nil
}

func (r *fakeBoardRepo) Summary(_ context.Context, id string) (*entity.BoardSummary, error) {
	b, ok := r.boards[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.summarize(b), nil
}

func (r *fakeBoardRepo) summarize(b *entity.Board) *entity.BoardSummary {
	s := &entity.BoardSummary{Board: *cloneBoard(b), MemberCount: len(b.MemberIDs)}
	if r.tasks != nil {
		for _, t := range r.tasks.tasks {
			if t.BoardID != b.ID {
				continue
			}
			s.TicketCount++
			if t.Priority == entity.PriorityHigh {
				s.HighPriorityCount++
			}
			if t.Status == entity.StatusToDo {
				s.TasksToDoCount++
			}
		}
	}
	return s
}

func (r *fakeBoardRepo) Update(_ context.Context, b *entity.Board) error {
	if _, ok := r.boards[b.ID]; !ok {
		return repo.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	r.boards[b.ID] = cloneBoard(b)
	return nil
}

// Delete mirrors the transactional cascade: comments first, then tasks,
// then the board itself. A second delete of the same id misses.
func (r *fakeBoardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.boards[id]; !ok {
		return repo.ErrNotFound
	}
	if r.tasks != nil {
		for tid, t := range r.tasks.tasks {
			if t.BoardID != id {
				continue
			}
			if r.comments != nil {
				for cid, c := range r.comments.comments {
					if c.TaskID == tid {
						delete(r.comments.comments, cid)
					}
				}
			}
			delete(r.tasks.tasks, tid)
		}
	}
	delete(r.boards, id)
	return nil
}

type fakeTaskRepo struct {
	tasks  map[string]*entity.Task
	boards *fakeBoardRepo
	seq    int
}

func newFakeTaskRepo(boards *fakeBoardRepo) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: map[string]*entity.Task{}, boards: boards}
	boards.tasks = r
	return r
}

func (r *fakeTaskRepo) checkAuthority(t *entity.Task) error {
	b, ok := r.boards.boards[t.BoardID]
	if !ok {
		return repo.ErrNotFound
	}
	for _, id := range append(append([]string{}, t.AssigneeIDs...), t.ReviewerIDs...) {
		if !b.HasAuthority(id) {
			return repo.ErrAssigneeNotMember
		}
	}
	return nil
}

func (r *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	if err := r.checkAuthority(t); err != nil {
		return err
	}
	r.seq++
	t.ID = fmt.Sprintf("t%d", r.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneTask(t), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	stored, ok := r.tasks[t.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := r.checkAuthority(t); err != nil {
		return err
	}
	// board_id never changes on update
	t.BoardID = stored.BoardID
	t.UpdatedAt = time.Now()
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) ListByBoard(_ context.Context, boardID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		if t.BoardID == boardID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListAssignedTo(_ context.Context, userID string) ([]*entity.Task, error) {
	return r.listByAssoc(userID, func(t *entity.Task) []string { return t.AssigneeIDs })
}

func (r *fakeTaskRepo) ListReviewedBy(_ context.Context, userID string) ([]*entity.Task, error) {
	return r.listByAssoc(userID, func(t *entity.Task) []string { return t.ReviewerIDs })
}

func (r *fakeTaskRepo) listByAssoc(userID string, ids func(*entity.Task) []string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		for _, id := range ids(t) {
			if id == userID {
				out = append(out, cloneTask(t))
				break
			}
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments map[string]*entity.Comment
	users    *fakeUserRepo
	seq      int
}

func newFakeCommentRepo(boards *fakeBoardRepo, users *fakeUserRepo) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: map[string]*entity.Comment{}, users: users}
	boards.comments = r
	return r
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	c.CreatedAt = time.Now()
	if r.users != nil {
		if u, ok := r.users.users[c.AuthorID]; ok {
			c.AuthorName = u.Fullname
		}
	}
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, taskID, commentID string) (*entity.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.TaskID != taskID {
		return nil, repo.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCommentRepo) ListByTask(_ context.Context, taskID string) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, taskID, commentID string) error {
	c, ok := r.comments[commentID]
	if !ok || c.TaskID != taskID {
		return repo.ErrNotFound
	}
	delete(r.comments, commentID)
	return nil
}

func cloneBoard(b *entity.Board) *entity.Board {
	clone := *b
	clone.MemberIDs = append([]string(nil), b.MemberIDs...)
	return &clone
}

func cloneTask(t *entity.Task) *entity.Task {
	clone := *t
	clone.AssigneeIDs = append([]string(nil), t.AssigneeIDs...)
	clone.ReviewerIDs = append([]string(nil), t.ReviewerIDs...)
	return &clone
}
