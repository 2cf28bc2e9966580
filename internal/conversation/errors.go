package conversation

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the conversation package.
var (
	ErrEmptyUtterance   = errors.New("utterance is empty or too short")
	ErrNoPendingItem    = errors.New("no item is awaiting clarification")
	ErrSessionNotFound  = errors.New("session not found")
	ErrExtractionFailed = errors.New("intent extraction failed")
)

// UnknownItemError reports an item name that is not on the menu.
// The processor leaves the caller-facing reply untouched on this error;
// the orchestrator composes the clarifying reply.
type UnknownItemError struct {
	Name string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("item %q is not on the menu", e.Name)
}

// IsUnknownItem reports whether err is an UnknownItemError.
func IsUnknownItem(err error) (*UnknownItemError, bool) {
	var uie *UnknownItemError
	if errors.As(err, &uie) {
		return uie, true
	}
	return nil, false
}
