package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// requireProposal checks the id against the dense range [1, count] and loads the record.
func requireProposal(cfg *dao.GlobalConfig, id uint64) *dao.Proposal {
	if id == 0 || id > cfg.ProposalCount {
		abortf(KindState, "proposal %d out of range [1, %d]", id, cfg.ProposalCount)
	}
	ptr := sdk.StateGetObject(dao.ProposalKey(id))
	if ptr == nil || *ptr == "" {
		abortf(KindState, "proposal %d not found", id)
	}
	prpsl, err := dao.DecodeProposal([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode proposal")
	}
	return prpsl
}

// loadTally decodes the vote totals of a proposal.
func loadTally(id uint64) *dao.Tally {
	ptr := sdk.StateGetObject(dao.TallyKey(id))
	if ptr == nil || *ptr == "" {
		abortf(KindState, "tally for proposal %d not found", id)
	}
	t, err := dao.DecodeTally([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode tally")
	}
	return t
}

// hasVoted reports whether a vote receipt exists for the pair.
func hasVoted(id uint64, voter sdk.Address) bool {
	ptr := sdk.StateGetObject(dao.VoteKey(id, toDaoAddress(voter)))
	return ptr != nil && *ptr != ""
}
