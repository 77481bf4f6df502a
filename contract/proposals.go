package contract

import (
	"github.com/CosmWasm/tinyjson"

	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// -----------------------------------------------------------------------------
// Proposal Creation
// -----------------------------------------------------------------------------

// createProposal validates the draft, allocates the next id and seeds an empty tally.
// The new id is returned as decimal text.
// Example args: ["create_proposal", "title", "desc", "treasury", be64(5), "bob"]
func createProposal() string {
	caller := getSenderAddress()
	acc := requireMember(caller)
	cfg := loadConfig()
	requireVotingPower(acc, cfg)

	title := argString(1, "title", MaxTitleLength)
	description := argString(2, "description", MaxDescriptionLength)
	ptype, ok := dao.ParseProposalType(string(argBytes(3, "proposal type")))
	if !ok {
		abortf(KindValidation, "unknown proposal type")
	}

	var amount uint64
	var recipient sdk.Address
	if ptype == dao.ProposalTreasury {
		amount = argUint64(4, "amount")
		if amount == 0 {
			abortf(KindValidation, "amount must be greater than zero")
		}
		if amount > cfg.Treasury {
			abortf(KindState, "amount %d exceeds treasury %d", amount, cfg.Treasury)
		}
		recipient = caller
		if raw, ok := optionalArg(5); ok {
			recipient = sdk.Address(raw)
			if !recipient.IsValid() {
				abortf(KindValidation, "invalid recipient")
			}
		}
	}

	now := nowUnix()
	deadline, ok := addUint64(now, cfg.VotingPeriod)
	if !ok {
		abortf(KindArithmetic, "deadline overflow")
	}
	id, ok := addUint64(cfg.ProposalCount, 1)
	if !ok {
		abortf(KindArithmetic, "proposal count overflow")
	}
	cfg.ProposalCount = id

	prpsl := &dao.Proposal{
		ID:          id,
		Creator:     toDaoAddress(caller),
		Title:       title,
		Description: description,
		Type:        ptype,
		Amount:      amount,
		Recipient:   toDaoAddress(recipient),
		CreatedAt:   now,
		Deadline:    deadline,
	}

	b := newBatch()
	b.putConfig(cfg)
	b.putProposal(prpsl)
	b.putTally(id, &dao.Tally{})
	b.apply()

	emitProposalCreatedEvent(prpsl)
	return UInt64ToString(id)
}

// -----------------------------------------------------------------------------
// Read Path
// -----------------------------------------------------------------------------

// getProposal is a membership free probe returning the proposal, its tally and
// derived status as json. It writes nothing.
// Example args: ["get_proposal", be64(1)]
func getProposal() string {
	id := argUint64(1, "proposal id")
	cfg := loadConfig()
	prpsl := requireProposal(cfg, id)
	tally := loadTally(id)

	data, err := tinyjson.Marshal(dao.NewProposalView(prpsl, tally, nowUnix()))
	if err != nil {
		sdk.Abort("failed to encode proposal")
	}
	return string(data)
}
