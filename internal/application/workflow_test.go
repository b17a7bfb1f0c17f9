package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestBoardLifecycle walks the full collaboration flow: an owner shares
// a board with two members, a member creates and staffs a task, another
// member discusses it, an outsider is shut out at every step, and the
// owner's delete tears the whole graph down.
func TestBoardLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boardSvc.CreateBoard(ctx, "owner", "Release 2.0", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	task, err := f.taskSvc.CreateTask(ctx, "alice", CreateTaskInput{
		BoardID:     board.ID,
		Title:       "Write changelog",
		Description: "Cover all user-facing changes",
		Priority:    "MEDIUM",
		Status:      "TO_DO",
		DueDate:     time.Now().AddDate(0, 0, 3),
		AssigneeIDs: []string{"bob"},
		ReviewerIDs: []string{"owner"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	comment, err := f.commentSvc.CreateComment(ctx, "bob", task.ID, "starting on this today")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// The outsider sees denials, never phantom 404s, at every layer.
	if _, err := f.boardSvc.GetBoard(ctx, "carol", board.ID); err == nil {
		t.Error("outsider read the board")
	}
	if _, err := f.taskSvc.GetTask(ctx, "carol", task.ID); err == nil {
		t.Error("outsider read the task")
	}
	if err := f.commentSvc.DeleteComment(ctx, "carol", task.ID, comment.ID); err == nil {
		t.Error("outsider deleted the comment")
	}

	// Board summary reflects the staffed task.
	summary, err := f.boardSvc.GetBoard(ctx, "bob", board.ID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if summary.TicketCount != 1 || summary.TasksToDoCount != 1 {
		t.Errorf("summary counts = %+v, want one TO_DO ticket", summary)
	}

	// Assignee moves the work along. bob is neither the creator nor the
	// board owner, so the status change must come from alice or owner.
	status := "IN_PROGRESS"
	if _, err := f.taskSvc.UpdateTask(ctx, "bob", task.ID, TaskPatch{Status: &status}); err == nil {
		t.Error("assignee without creator rights updated the task")
	}
	if _, err := f.taskSvc.UpdateTask(ctx, "alice", task.ID, TaskPatch{Status: &status}); err != nil {
		t.Fatalf("creator status update: %v", err)
	}

	// Owner tears everything down in one stroke.
	if err := f.boardSvc.DeleteBoard(ctx, "owner", board.ID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if _, err := f.taskSvc.GetTask(ctx, "alice", task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("task after cascade: got %v, want ErrNotFound", err)
	}
	boards, err := f.boardSvc.ListBoardsFor(ctx, "alice")
	if err != nil {
		t.Fatalf("ListBoardsFor: %v", err)
	}
	if len(boards) != 0 {
		t.Errorf("alice still sees %d boards after the cascade", len(boards))
	}
	assigned, _ := f.taskSvc.ListTasksAssignedTo(ctx, "bob")
	if len(assigned) != 0 {
		t.Errorf("bob still assigned to %d tasks after the cascade", len(assigned))
	}
}
