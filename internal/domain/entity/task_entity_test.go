package entity

import "testing"

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"LOW", "MEDIUM", "HIGH"} {
		p, ok := ParsePriority(s)
		if !ok || string(p) != s {
			t.Errorf("ParsePriority(%q) = (%q, %v)", s, p, ok)
		}
	}
	for _, s := range []string{"", "low", "URGENT", "high "} {
		if _, ok := ParsePriority(s); ok {
			t.Errorf("ParsePriority(%q) accepted", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"TO_DO", "IN_PROGRESS", "IN_REVIEW", "FINISHED"} {
		st, ok := ParseStatus(s)
		if !ok || string(st) != s {
			t.Errorf("ParseStatus(%q) = (%q, %v)", s, st, ok)
		}
	}
	for _, s := range []string{"", "todo", "DONE", "IN PROGRESS"} {
		if _, ok := ParseStatus(s); ok {
			t.Errorf("ParseStatus(%q) accepted", s)
		}
	}
}

func TestTaskResolveBoardID(t *testing.T) {
	task := &Task{ID: "t1", BoardID: "b1"}
	if got := task.ResolveBoardID(); got != "b1" {
		t.Errorf("ResolveBoardID() = %q, want %q", got, "b1")
	}
}
