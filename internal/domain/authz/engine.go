package authz

import (
	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
)

// Engine evaluates whether a principal may perform an action on an
// entity, given the entity's position in the ownership graph
// (User -> Board -> Task -> Comment). It is pure: every function takes
// fully loaded entities and returns a Decision without side effects.
//
// Reads are membership-based and broad. Task mutation and deletion are
// restricted to the creator-or-board-owner pair so one assignee cannot
// alter another's work. Comment deletion is strictly author-scoped,
// with no board-owner override; the asymmetry with task deletion is
// deliberate and preserves comment authorship integrity.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (e *Engine) CanReadBoard(principal string, b *entity.Board) Decision {
	if !b.HasAuthority(principal) {
		return Deny("no authority over board")
	}
	return Allow()
}

// CanCreateBoard: any authenticated principal may create a board and
// becomes its owner.
func (e *Engine) CanCreateBoard(principal string) Decision {
	if principal == "" {
		return Deny("unauthenticated")
	}
	return Allow()
}

func (e *Engine) CanUpdateBoard(principal string, b *entity.Board) Decision {
	if principal != b.OwnerID {
		return Deny("only the board owner may modify the board")
	}
	return Allow()
}

func (e *Engine) CanDeleteBoard(principal string, b *entity.Board) Decision {
	if principal != b.OwnerID {
		return Deny("only the board owner may delete the board")
	}
	return Allow()
}

// CanCreateTask takes the target board since the task does not exist yet.
func (e *Engine) CanCreateTask(principal string, board *entity.Board) Decision {
	if !board.HasAuthority(principal) {
		return Deny("no authority over board")
	}
	return Allow()
}

func (e *Engine) CanReadTask(principal string, t *entity.Task, board *entity.Board) Decision {
	return e.canReadScoped(principal, t, board)
}

func (e *Engine) CanUpdateTask(principal string, t *entity.Task, board *entity.Board) Decision {
	if !board.HasAuthority(principal) {
		return Deny("no authority over board")
	}
	if principal != t.OwnerID && principal != board.OwnerID {
		return Deny("only the task creator or the board owner may modify the task")
	}
	return Allow()
}

func (e *Engine) CanDeleteTask(principal string, t *entity.Task, board *entity.Board) Decision {
	if principal != t.OwnerID && principal != board.OwnerID {
		return Deny("only the task creator or the board owner may delete the task")
	}
	return Allow()
}

// CanAssignUser checks the target of an assignment (assignee or
// reviewer), not the acting principal. The repository re-checks the
// same invariant at write time inside the transaction.
func (e *Engine) CanAssignUser(target string, board *entity.Board) Decision {
	if !board.HasAuthority(target) {
		return Deny("assigned user has no authority over board")
	}
	return Allow()
}

func (e *Engine) CanCreateComment(principal string, task *entity.Task, board *entity.Board) Decision {
	return e.canReadScoped(principal, task, board)
}

func (e *Engine) CanListComments(principal string, task *entity.Task, board *entity.Board) Decision {
	return e.canReadScoped(principal, task, board)
}

// CanDeleteComment: the author and nobody else, the board owner
// included.
func (e *Engine) CanDeleteComment(principal string, c *entity.Comment) Decision {
	if principal != c.AuthorID {
		return Deny("only the comment author may delete the comment")
	}
	return Allow()
}

// canReadScoped is the shared membership gate for anything that resolves
// to a board.
func (e *Engine) canReadScoped(principal string, scoped BoardScoped, board *entity.Board) Decision {
	if scoped.ResolveBoardID() != board.ID {
		return Deny("entity does not belong to board")
	}
	if !board.HasAuthority(principal) {
		return Deny("no authority over board")
	}
	return Allow()
}
