package authz

// Decision is the outcome of an authorization check. Denials always
// carry a reason so callers can surface them as authorization failures
// rather than silently filtering.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// BoardScoped is implemented by entities whose authority derives from a
// board. Dispatch happens through this capability instead of probing
// concrete types.
type BoardScoped interface {
	ResolveBoardID() string
}
