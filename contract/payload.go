package contract

import (
	"encoding/binary"

	"okinoko_council/contract/dao"
)

// -----------------------------------------------------------------------------
// Argument decoding
// -----------------------------------------------------------------------------

// Arguments are positional byte strings. Arg 0 is the action name, numbers are
// big-endian integers of up to 8 bytes.

// argBytes returns a required argument or aborts naming what is missing.
func argBytes(i int, name string) []byte {
	raw, ok := currentEnv().Arg(i)
	if !ok {
		abortf(KindValidation, "%s required", name)
	}
	return raw
}

// optionalArg returns the argument when it was sent and is not empty.
func optionalArg(i int) ([]byte, bool) {
	raw, ok := currentEnv().Arg(i)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

// argString reads a required, non-empty text argument capped at maxLen bytes.
func argString(i int, name string, maxLen int) string {
	raw := argBytes(i, name)
	if len(raw) == 0 {
		abortf(KindValidation, "%s must not be empty", name)
	}
	if len(raw) > maxLen {
		abortf(KindValidation, "%s exceeds %d bytes", name, maxLen)
	}
	return string(raw)
}

// argUint64 reads a required big-endian integer argument.
func argUint64(i int, name string) uint64 {
	v, ok := decodeUint64BE(argBytes(i, name))
	if !ok {
		abortf(KindValidation, "%s must be a big-endian integer of 1 to %d bytes", name, maxUintArgLength)
	}
	return v
}

// decodeUint64BE mirrors the ledger's btoi: 1 to 8 bytes, most significant first.
func decodeUint64BE(b []byte) (uint64, bool) {
	if len(b) == 0 || len(b) > maxUintArgLength {
		return 0, false
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, true
}

// -----------------------------------------------------------------------------
// Argument encoding (clients)
// -----------------------------------------------------------------------------

// EncodeUint64 is the fixed width encoding clients use for numeric args.
// Example payload: EncodeUint64(1)
func EncodeUint64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// JoinArgs builds a join call for the given tier.
func JoinArgs(tier dao.Tier) [][]byte {
	return [][]byte{[]byte(ActionJoin.String()), {byte(tier)}}
}

// CreateProposalArgs builds a create_proposal call. amount and recipient are only
// sent for treasury proposals.
func CreateProposalArgs(title, description string, pt dao.ProposalType, amount uint64, recipient string) [][]byte {
	args := [][]byte{
		[]byte(ActionCreateProposal.String()),
		[]byte(title),
		[]byte(description),
		[]byte(pt.String()),
	}
	if pt == dao.ProposalTreasury {
		args = append(args, EncodeUint64(amount))
		if recipient != "" {
			args = append(args, []byte(recipient))
		}
	}
	return args
}

// VoteArgs builds a vote call.
func VoteArgs(id uint64, choice dao.Choice) [][]byte {
	return [][]byte{[]byte(ActionVote.String()), EncodeUint64(id), []byte(choice.String())}
}

// ExecuteArgs builds an execute call.
func ExecuteArgs(id uint64) [][]byte {
	return [][]byte{[]byte(ActionExecute.String()), EncodeUint64(id)}
}

// GetProposalArgs builds a get_proposal call.
func GetProposalArgs(id uint64) [][]byte {
	return [][]byte{[]byte(ActionGetProposal.String()), EncodeUint64(id)}
}
