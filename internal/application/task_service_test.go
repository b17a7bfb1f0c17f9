package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func (f *fixture) seedBoardWithTask(t *testing.T) (boardID, taskID string) {
	t.Helper()
	ctx := context.Background()
	b, err := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	task, err := f.taskSvc.CreateTask(ctx, "alice", CreateTaskInput{
		BoardID:  b.ID,
		Title:    "Fix login bug",
		Priority: "HIGH",
		Status:   "TO_DO",
		DueDate:  time.Now().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return b.ID, task.ID
}

func TestCreateTaskAssignmentInvariant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice"})

	// carol exists but holds no authority over the board.
	_, err := f.taskSvc.CreateTask(ctx, "owner", CreateTaskInput{
		BoardID: b.ID, Title: "Task", Priority: "LOW", Status: "TO_DO",
		AssigneeIDs: []string{"carol"},
	})
	if ve, ok := AsValidation(err); !ok || ve.Details["assignees"] == "" {
		t.Errorf("non-member assignee: got %v, want assignees validation error", err)
	}

	_, err = f.taskSvc.CreateTask(ctx, "owner", CreateTaskInput{
		BoardID: b.ID, Title: "Task", Priority: "LOW", Status: "TO_DO",
		ReviewerIDs: []string{"carol"},
	})
	if ve, ok := AsValidation(err); !ok || ve.Details["reviewers"] == "" {
		t.Errorf("non-member reviewer: got %v, want reviewers validation error", err)
	}

	// The owner is assignable even without a membership row.
	task, err := f.taskSvc.CreateTask(ctx, "alice", CreateTaskInput{
		BoardID: b.ID, Title: "Task", Priority: "LOW", Status: "TO_DO",
		AssigneeIDs: []string{"owner", "alice"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if len(task.AssigneeIDs) != 2 {
		t.Errorf("assignees = %v, want owner and alice", task.AssigneeIDs)
	}
}

func TestCreateTaskFieldValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", nil)

	cases := []struct {
		name  string
		in    CreateTaskInput
		field string
	}{
		{"blank title", CreateTaskInput{BoardID: b.ID, Title: " ", Priority: "LOW", Status: "TO_DO"}, "title"},
		{"long title", CreateTaskInput{BoardID: b.ID, Title: strings.Repeat("x", 31), Priority: "LOW", Status: "TO_DO"}, "title"},
		{"long description", CreateTaskInput{BoardID: b.ID, Title: "ok", Description: strings.Repeat("x", 501), Priority: "LOW", Status: "TO_DO"}, "description"},
		{"bad priority", CreateTaskInput{BoardID: b.ID, Title: "ok", Priority: "URGENT", Status: "TO_DO"}, "priority"},
		{"bad status", CreateTaskInput{BoardID: b.ID, Title: "ok", Priority: "LOW", Status: "DONE"}, "status"},
		{"unknown board", CreateTaskInput{BoardID: "missing", Title: "ok", Priority: "LOW", Status: "TO_DO"}, "board"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.taskSvc.CreateTask(ctx, "owner", tc.in)
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if ve.Details[tc.field] == "" {
				t.Errorf("details = %v, want %q entry", ve.Details, tc.field)
			}
		})
	}
}

func TestCreateTaskDeniedForOutsider(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice"})

	_, err := f.taskSvc.CreateTask(ctx, "carol", CreateTaskInput{
		BoardID: b.ID, Title: "Task", Priority: "LOW", Status: "TO_DO",
	})
	if _, ok := AsDenied(err); !ok {
		t.Errorf("outsider create: got %v, want DeniedError", err)
	}
}

func TestUpdateTaskCreatorOrBoardOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, taskID := f.seedBoardWithTask(t) // created by alice

	status := "IN_PROGRESS"
	// bob holds authority over the board but is neither the creator nor
	// the board owner.
	if _, err := f.taskSvc.UpdateTask(ctx, "bob", taskID, TaskPatch{Status: &status}); err == nil {
		t.Error("non-creator member updated the task")
	} else if _, ok := AsDenied(err); !ok {
		t.Errorf("non-creator update: got %v, want DeniedError", err)
	}

	if _, err := f.taskSvc.UpdateTask(ctx, "alice", taskID, TaskPatch{Status: &status}); err != nil {
		t.Errorf("creator update: %v", err)
	}
	done := "FINISHED"
	got, err := f.taskSvc.UpdateTask(ctx, "owner", taskID, TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("board owner update: %v", err)
	}
	if string(got.Status) != "FINISHED" {
		t.Errorf("status = %q after update", got.Status)
	}
}

func TestUpdateTaskBoardImmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, taskID := f.seedBoardWithTask(t)
	other, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 2", nil)

	// Rejected as a validation failure before any authorization outcome,
	// even for the board owner.
	_, err := f.taskSvc.UpdateTask(ctx, "owner", taskID, TaskPatch{BoardID: &other.ID})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("board move: got %v, want ValidationError", err)
	}
	if ve.Details["board"] == "" {
		t.Errorf("details = %v, want board entry", ve.Details)
	}

	// A patch restating the current board is a no-op, not an error.
	got, err := f.taskSvc.GetTask(ctx, "owner", taskID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if _, err := f.taskSvc.UpdateTask(ctx, "owner", taskID, TaskPatch{BoardID: &got.BoardID}); err != nil {
		t.Errorf("same-board patch rejected: %v", err)
	}
}

func TestUpdateTaskAssignmentRevalidated(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, taskID := f.seedBoardWithTask(t)

	assignees := []string{"carol"}
	_, err := f.taskSvc.UpdateTask(ctx, "alice", taskID, TaskPatch{AssigneeIDs: &assignees})
	if _, ok := AsValidation(err); !ok {
		t.Errorf("non-member assignee on update: got %v, want ValidationError", err)
	}
}

func TestDeleteTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, taskID := f.seedBoardWithTask(t) // created by alice
	f.commentSvc.CreateComment(ctx, "bob", taskID, "note")

	if err := f.taskSvc.DeleteTask(ctx, "bob", taskID); err == nil {
		t.Error("non-creator member deleted the task")
	}
	if err := f.taskSvc.DeleteTask(ctx, "alice", taskID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	if err := f.taskSvc.DeleteTask(ctx, "alice", taskID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
	if _, err := f.commentSvc.ListComments(ctx, "alice", taskID); !errors.Is(err, ErrNotFound) {
		t.Errorf("comments of deleted task: got %v, want ErrNotFound", err)
	}
}

func TestGetTaskDeniedForOutsider(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, taskID := f.seedBoardWithTask(t)

	_, err := f.taskSvc.GetTask(ctx, "carol", taskID)
	if _, ok := AsDenied(err); !ok {
		t.Errorf("outsider read: got %v, want DeniedError", err)
	}
}

func TestListTasksOnBoard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	boardID, _ := f.seedBoardWithTask(t)

	got, err := f.taskSvc.ListTasksOnBoard(ctx, "bob", boardID)
	if err != nil {
		t.Fatalf("ListTasksOnBoard: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("listed %d tasks, want 1", len(got))
	}
	if _, err := f.taskSvc.ListTasksOnBoard(ctx, "carol", boardID); err == nil {
		t.Error("outsider listed board tasks")
	}
	if _, err := f.taskSvc.ListTasksOnBoard(ctx, "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing board: got %v, want ErrNotFound", err)
	}
}

func TestListTasksByAssociation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, _ := f.boardSvc.CreateBoard(ctx, "owner", "Sprint 1", []string{"alice", "bob"})
	f.taskSvc.CreateTask(ctx, "owner", CreateTaskInput{
		BoardID: b.ID, Title: "A", Priority: "LOW", Status: "TO_DO",
		AssigneeIDs: []string{"alice"}, ReviewerIDs: []string{"bob"},
	})
	f.taskSvc.CreateTask(ctx, "owner", CreateTaskInput{
		BoardID: b.ID, Title: "B", Priority: "LOW", Status: "TO_DO",
		AssigneeIDs: []string{"alice", "bob"},
	})

	assigned, err := f.taskSvc.ListTasksAssignedTo(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTasksAssignedTo: %v", err)
	}
	if len(assigned) != 2 {
		t.Errorf("alice assigned to %d tasks, want 2", len(assigned))
	}
	reviewing, err := f.taskSvc.ListTasksReviewedBy(ctx, "bob")
	if err != nil {
		t.Fatalf("ListTasksReviewedBy: %v", err)
	}
	if len(reviewing) != 1 {
		t.Errorf("bob reviewing %d tasks, want 1", len(reviewing))
	}
}

func TestSearchTasksWithoutIndex(t *testing.T) {
	f := newFixture()
	got, err := f.taskSvc.SearchTasks(context.Background(), "owner", "bug", 10)
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("search without an index returned %d hits", len(got))
	}
}
