package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Getinger96/KannMind-Backend/internal/domain/authz"
)

type fixture struct {
	users    *fakeUserRepo
	boards   *fakeBoardRepo
	tasks    *fakeTaskRepo
	comments *fakeCommentRepo

	boardSvc   *BoardService
	taskSvc    *TaskService
	commentSvc *CommentService
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	boards := newFakeBoardRepo()
	tasks := newFakeTaskRepo(boards)
	comments := newFakeCommentRepo(boards, users)
	engine := authz.NewEngine()

	users.add("owner", "Olive Owner")
	users.add("alice", "Alice Adams")
	users.add("bob", "Bob Brown")
	users.add("carol", "Carol Clark")

	return &fixture{
		users:      users,
		boards:     boards,
		tasks:      tasks,
		comments:   comments,
		boardSvc:   NewBoardService(boards, users, engine, nil),
		taskSvc:    NewTaskService(tasks, boards, engine, nil, nil, ""),
		commentSvc: NewCommentService(comments, tasks, boards, engine, nil),
	}
}

func TestCreateBoard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.boardSvc.CreateBoard(ctx, "owner", "  Sprint 1  ", []string{"alice", "alice", "bob"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if b.Title != "Sprint 1" {
		t.Errorf("title = %q, want trimmed %q", b.Title, "Sprint 1")
	}
	if b.OwnerID != "owner" {
		t.Errorf("owner = %q, want the acting principal", b.OwnerID)
	}
	if len(b.MemberIDs) != 2 {
		t.Errorf("members = %v, want deduplicated pair", b.MemberIDs)
	}
	if b.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", b.MemberCount)
	}
}

func TestCreateBoardValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.boardSvc.CreateBoard(ctx, "owner", "   ", nil); err == nil {
		t.Error("blank title accepted")
	} else if _, ok := AsValidation(err); !ok {
		t.Errorf("blank title: got %v, want ValidationError", err)
	}

	long := strings.Repeat("x", 31)
	if _, err := f.boardSvc.CreateBoard(ctx, "owner", long, nil); err == nil {
		t.Error("31-char title accepted")
	}
	if _, err := f.boardSvc.CreateBoard(ctx, "owner", strings.Repeat("x", 30), nil); err != nil {
		t.Errorf("30-char title rejected: %v", err)
	}

	if _, err := f.boardSvc.CreateBoard(ctx, "owner", "Valid", []string{"ghost"}); err == nil {
		t.Error("unknown member id accepted")
	} else if ve, ok := AsValidation(err); !ok || ve.Details["members"] == "" {
		t.Errorf("unknown member: got %v, want members detail", err)
	}
}

func TestGetBoardDeniedForOutsider(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	if _, err := f.boardSvc.GetBoard(ctx, "alice", b.ID); err != nil {
		t.Errorf("member read failed: %v", err)
	}
	// An existing board outside the principal's scope reads as denied,
	// never as not found.
	_, err = f.boardSvc.GetBoard(ctx, "carol", b.ID)
	if _, ok := AsDenied(err); !ok {
		t.Errorf("outsider read: got %v, want DeniedError", err)
	}
	if _, err := f.boardSvc.GetBoard(ctx, "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing board: got %v, want ErrNotFound", err)
	}
}

func TestUpdateBoardOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice"})

	title := "Sprint 2"
	if _, err := f.boardSvc.UpdateBoard(ctx, "alice", b.ID, BoardPatch{Title: &title}); err == nil {
		t.Error("member updated the board")
	} else if _, ok := AsDenied(err); !ok {
		t.Errorf("member update: got %v, want DeniedError", err)
	}

	got, err := f.boardSvc.UpdateBoard(ctx, "owner", b.ID, BoardPatch{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Title != "Sprint 2" {
		t.Errorf("title = %q after update", got.Title)
	}
}

func TestUpdateBoardMemberRemovalKeepsAssignments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice", "bob"})

	task, err := f.taskSvc.CreateTask(ctx, "owner", CreateTaskInput{
		BoardID:     b.ID,
		Title:       "Ship it",
		Priority:    "HIGH",
		Status:      "TO_DO",
		AssigneeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	members := []string{"bob"}
	if _, err := f.boardSvc.UpdateBoard(ctx, "owner", b.ID, BoardPatch{MemberIDs: &members}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	got, err := f.taskSvc.GetTask(ctx, "owner", task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if len(got.AssigneeIDs) != 1 || got.AssigneeIDs[0] != "alice" {
		t.Errorf("assignees = %v; removing a member must not strip existing assignments", got.AssigneeIDs)
	}
}

func TestDeleteBoardCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice"})
	task, _ := f.taskSvc.CreateTask(ctx, "alice", CreateTaskInput{
		BoardID: b.ID, Title: "Task", Priority: "LOW", Status: "TO_DO",
	})
	c, _ := f.commentSvc.CreateComment(ctx, "alice", task.ID, "first")

	if err := f.boardSvc.DeleteBoard(ctx, "alice", b.ID); err == nil {
		t.Fatal("member deleted the board")
	}
	if err := f.boardSvc.DeleteBoard(ctx, "owner", b.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	if _, ok := f.tasks.tasks[task.ID]; ok {
		t.Error("task survived the cascade")
	}
	if _, ok := f.comments.comments[c.ID]; ok {
		t.Error("comment survived the cascade")
	}
	// Second delete of the same id observes not found.
	if err := f.boardSvc.DeleteBoard(ctx, "owner", b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestListBoardsFor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.boardSvc.CreateBoard(ctx, "owner", "Owned", nil)
	f.boardSvc.CreateBoard(ctx, "alice", "Shared", []string{"owner"})
	f.boardSvc.CreateBoard(ctx, "bob", "Private", nil)

	got, err := f.boardSvc.ListBoardsFor(ctx, "owner")
	if err != nil {
		t.Fatalf("ListBoardsFor: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("listed %d boards, want owned + member = 2", len(got))
	}
}
