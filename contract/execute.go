package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// execute settles a proposal once voting closed with a simple majority. Treasury
// proposals pay their amount to the recipient, re-checked against the balance now.
// Example args: ["execute", be64(1)]
func execute() string {
	caller := getSenderAddress()
	requireMember(caller)
	cfg := loadConfig()

	id := argUint64(1, "proposal id")
	prpsl := requireProposal(cfg, id)
	if prpsl.Executed {
		abortf(KindState, "proposal %d already executed", id)
	}

	tally := loadTally(id)
	if tally.Yes <= tally.No {
		abortf(KindState, "proposal %d did not pass: %d yes vs %d no", id, tally.Yes, tally.No)
	}
	if tally.Yes == 0 {
		abortf(KindState, "proposal %d has no yes votes", id)
	}
	if nowUnix() <= prpsl.Deadline {
		abortf(KindState, "voting on proposal %d open until %d", id, prpsl.Deadline)
	}

	b := newBatch()
	if prpsl.Type == dao.ProposalTreasury {
		debitTreasury(cfg, prpsl.Amount)
		b.putConfig(cfg)
		b.pay(sdk.Address(prpsl.Recipient), prpsl.Amount)
	}
	prpsl.Executed = true
	b.putProposal(prpsl)
	b.apply()

	emitProposalExecutedEvent(id, caller.String())
	if prpsl.Type == dao.ProposalTreasury {
		emitFundsRemoved(id, string(prpsl.Recipient), prpsl.Amount)
	}
	return "executed"
}
