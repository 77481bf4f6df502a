package indexer

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the tag in front of every application log line.
type Kind string

const (
	KindInit             Kind = "init"
	KindMemberJoined     Kind = "mj"
	KindFundsAdded       Kind = "af"
	KindProposalCreated  Kind = "pc"
	KindVoteCast         Kind = "v"
	KindProposalExecuted Kind = "px"
	KindFundsRemoved     Kind = "rf"
)

// requiredFields lists the fields each kind must carry.
var requiredFields = map[Kind][]string{
	KindInit:             {"mvp", "vp"},
	KindMemberJoined:     {"by", "tier", "vp"},
	KindFundsAdded:       {"by", "am"},
	KindProposalCreated:  {"id", "by", "t", "am"},
	KindVoteCast:         {"id", "by", "c", "w"},
	KindProposalExecuted: {"id", "by"},
	KindFundsRemoved:     {"id", "to", "am"},
}

var ErrUnknownEvent = errors.New("unknown event")

// Event is one parsed log line.
type Event struct {
	Kind   Kind
	Fields map[string]string
	Raw    string
}

// ParseEvent reads a line of the form kind|key:value|key:value.
// Example payload: ParseEvent("v|id:1|by:alice|c:yes|w:10")
func ParseEvent(line string) (Event, error) {
	parts := strings.Split(line, "|")
	ev := Event{Kind: Kind(parts[0]), Fields: make(map[string]string, len(parts)-1), Raw: line}
	required, ok := requiredFields[ev.Kind]
	if !ok {
		return Event{}, errors.Wrapf(ErrUnknownEvent, "%q", parts[0])
	}
	for _, p := range parts[1:] {
		// values may hold ':' themselves (app:1), keys never do
		k, v, ok := strings.Cut(p, ":")
		if !ok || k == "" {
			return Event{}, errors.Errorf("malformed field %q in %q", p, line)
		}
		if _, dup := ev.Fields[k]; dup {
			return Event{}, errors.Errorf("duplicate field %q in %q", k, line)
		}
		ev.Fields[k] = v
	}
	for _, k := range required {
		if _, ok := ev.Fields[k]; !ok {
			return Event{}, errors.Errorf("%s event without %s", ev.Kind, k)
		}
	}
	return ev, nil
}

// Uint reads a numeric field, missing fields read as zero.
func (e Event) Uint(key string) (uint64, error) {
	v, ok := e.Fields[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, errors.Wrapf(err, "%s field %s", e.Kind, key)
}

// Account is the address the event is about: the actor, or the payee of a payout.
func (e Event) Account() string {
	if to, ok := e.Fields["to"]; ok {
		return to
	}
	return e.Fields["by"]
}

// Detail is the one free text field a kind has: tier, proposal type or choice.
func (e Event) Detail() string {
	switch e.Kind {
	case KindMemberJoined:
		return e.Fields["tier"]
	case KindProposalCreated:
		return e.Fields["t"]
	case KindVoteCast:
		return e.Fields["c"]
	}
	return ""
}

// Value is the number a kind carries besides the proposal id.
func (e Event) Value() (uint64, error) {
	switch e.Kind {
	case KindMemberJoined:
		return e.Uint("vp")
	case KindVoteCast:
		return e.Uint("w")
	case KindInit:
		return e.Uint("vp")
	}
	return e.Uint("am")
}
