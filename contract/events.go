package contract

import (
	"fmt"

	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// emitInitEvent marks the moment the council came to life with its defaults.
func emitInitEvent(cfg *dao.GlobalConfig) {
	sdk.Log(fmt.Sprintf(
		"init|mvp:%d|vp:%d",
		cfg.MinVotingPower,
		cfg.VotingPeriod,
	))
}

// emitJoinedEvent writes a tiny "mj" log so watchers know someone fresh just joined.
func emitJoinedEvent(memberAddress string, tier dao.Tier, power uint64) {
	sdk.Log(fmt.Sprintf(
		"mj|by:%s|tier:%d|vp:%d",
		memberAddress,
		tier,
		power,
	))
}

// emitFundsAdded tells indexing bots the treasury grew.
func emitFundsAdded(addedByAddress string, amount uint64) {
	sdk.Log(fmt.Sprintf(
		"af|by:%s|am:%d",
		addedByAddress,
		amount,
	))
}

// emitProposalCreatedEvent keeps observers updated with a short pc line for every new idea.
func emitProposalCreatedEvent(prpsl *dao.Proposal) {
	sdk.Log(fmt.Sprintf(
		"pc|id:%d|by:%s|t:%s|am:%d",
		prpsl.ID,
		string(prpsl.Creator),
		prpsl.Type.String(),
		prpsl.Amount,
	))
}

// emitVoteCasted includes choice plus weight so tallies can be replayed from logs only.
func emitVoteCasted(proposalId uint64, voter string, choice dao.Choice, weight uint64) {
	sdk.Log(fmt.Sprintf(
		"v|id:%d|by:%s|c:%s|w:%d",
		proposalId,
		voter,
		choice.String(),
		weight,
	))
}

// emitProposalExecutedEvent marks a proposal as executed by the given member.
func emitProposalExecutedEvent(proposalId uint64, executor string) {
	sdk.Log(fmt.Sprintf(
		"px|id:%d|by:%s",
		proposalId,
		executor,
	))
}

// emitFundsRemoved mirrors the add log for treasury payouts.
func emitFundsRemoved(proposalId uint64, removedToAddress string, amount uint64) {
	sdk.Log(fmt.Sprintf(
		"rf|id:%d|to:%s|am:%d",
		proposalId,
		removedToAddress,
		amount,
	))
}
