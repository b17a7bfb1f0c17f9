package entity

import "time"

// Board is the root of the ownership graph. Tasks hang off a board and
// comments hang off tasks; all authority questions bottom out here.
//
// MemberIDs never contains duplicates. The owner may or may not also
// appear in MemberIDs; authority checks treat the owner as implicitly
// authorized either way.
type Board struct {
	ID        string
	Title     string
	OwnerID   string
	MemberIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAuthority reports whether userID holds authority over the board:
// the board owner or any listed member. This is the single membership
// predicate the rest of the system relies on; it makes no broader
// authorization decision.
func (b *Board) HasAuthority(userID string) bool {
	if userID == "" {
		return false
	}
	if userID == b.OwnerID {
		return true
	}
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AuthoritySet returns owner ∪ members as a lookup set.
func (b *Board) AuthoritySet() map[string]struct{} {
	set := make(map[string]struct{}, len(b.MemberIDs)+1)
	set[b.OwnerID] = struct{}{}
	for _, id := range b.MemberIDs {
		set[id] = struct{}{}
	}
	return set
}

// BoardSummary carries the aggregate counts rendered on board lists.
type BoardSummary struct {
	Board
	MemberCount       int
	TicketCount       int
	HighPriorityCount int
	TasksToDoCount    int
}
