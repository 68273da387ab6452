package errors

import (
	"fmt"
	"strings"
)

// StoreWriteFailure is returned when the remote store rejects a create,
// update or delete. Local state is left exactly as it was.
type StoreWriteFailure struct {
	Op    string // "create", "update" or "delete"
	BotID string
	Err   error
}

func (e *StoreWriteFailure) Error() string {
	if e.BotID != "" {
		return fmt.Sprintf("failed to %s bot %s: %v", e.Op, e.BotID, e.Err)
	}
	return fmt.Sprintf("failed to %s bot: %v", e.Op, e.Err)
}

func (e *StoreWriteFailure) Unwrap() error  { return e.Err }
func (e *StoreWriteFailure) Notified() bool { return true }

// StoreReadFailure is returned when the initial roster fetch fails.
type StoreReadFailure struct {
	Err error
}

func (e *StoreReadFailure) Error() string {
	return fmt.Sprintf("failed to fetch bots: %v", e.Err)
}

func (e *StoreReadFailure) Unwrap() error  { return e.Err }
func (e *StoreReadFailure) Notified() bool { return true }

// ValidationFailure is returned when a draft or working copy is submitted
// in an invalid state. Nothing is sent to the store.
type ValidationFailure struct {
	Problems []string
}

func (e *ValidationFailure) Error() string {
	return "invalid bot: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationFailure) Notified() bool { return true }
