package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotDeployed is returned for calls before the application exists.
	ErrNotDeployed = errors.New("application not deployed")
	// ErrAlreadyDeployed is returned for a second creating call.
	ErrAlreadyDeployed = errors.New("application already deployed")
	// ErrInsufficientFunds rejects a group whose payment overdraws an account.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrEmptyGroup rejects groups without transactions.
	ErrEmptyGroup = errors.New("empty group")
	// ErrInvalidAccount rejects malformed addresses before anything runs.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrStaleTimestamp rejects a group stamped before the last committed one.
	ErrStaleTimestamp = errors.New("timestamp before last committed group")
)

// AbortError is returned when the application aborted one of the group's calls.
// The whole group is discarded, including its payments.
type AbortError struct {
	TxID  string
	Index int
	Msg   string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("group %s: call %d aborted: %s", e.TxID, e.Index, e.Msg)
}

// AbortMessage digs the application's abort message out of err, ok is false when
// the group failed for another reason.
func AbortMessage(err error) (string, bool) {
	var ae *AbortError
	if errors.As(err, &ae) {
		return ae.Msg, true
	}
	return "", false
}
