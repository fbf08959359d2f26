package panel

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound means TreeSync has no node for an id the store knows about: the two
	// surfaces have diverged.
	ErrNodeNotFound = errors.New("tree node not found")

	// ErrNodeExists means a second node was requested for an id that already has one.
	ErrNodeExists = errors.New("tree node already exists")

	ErrFlowBusy    = errors.New("a server dialog is already open")
	ErrNoSelection = errors.New("no server selected")
	ErrNotStarted  = errors.New("panel not started")
)

// InvariantError reports a desync between the store and the tree. It is never a user error;
// the session should stop rather than continue on diverged state.
type InvariantError struct {
	Op  string
	ID  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("panel invariant violated during %s of server %s: %v", e.Op, e.ID, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func nodeNotFound(id string) error { return fmt.Errorf("%w: %s", ErrNodeNotFound, id) }
