package contract

import (
	"fmt"

	"okinoko_council/sdk"
)

// Kind groups faults by what went wrong. The host only ever sees an aborted call,
// the kind is carried in the abort message for clients and logs.
type Kind uint8

const (
	KindAuthorization Kind = iota + 1
	KindValidation
	KindState
	KindArithmetic
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindArithmetic:
		return "arithmetic"
	default:
		return "fault"
	}
}

// abortf aborts the running call. It never returns.
// Example payload: abortf(KindState, "proposal %d already executed", 3)
func abortf(kind Kind, format string, args ...any) {
	sdk.Abort(kind.String() + ": " + fmt.Sprintf(format, args...))
}
