package contract

import (
	"okinoko_council/contract/dao"
)

// -----------------------------------------------------------------------------
// Voting
// -----------------------------------------------------------------------------

// vote adds the caller's full voting power to one choice. A receipt per
// (proposal, account) blocks any second vote, whatever the choice.
// Example args: ["vote", be64(1), "yes"]
func vote() string {
	caller := getSenderAddress()
	acc := requireMember(caller)
	cfg := loadConfig()
	requireVotingPower(acc, cfg)

	id := argUint64(1, "proposal id")
	prpsl := requireProposal(cfg, id)
	if nowUnix() > prpsl.Deadline {
		abortf(KindState, "voting on proposal %d closed at %d", id, prpsl.Deadline)
	}
	choice, ok := dao.ParseChoice(string(argBytes(2, "choice")))
	if !ok {
		abortf(KindValidation, "choice must be yes, no or abstain")
	}
	if hasVoted(id, caller) {
		abortf(KindState, "%s already voted on proposal %d", caller, id)
	}

	tally, ok := loadTally(id).Add(choice, acc.VotingPower)
	if !ok {
		abortf(KindArithmetic, "tally overflow")
	}

	b := newBatch()
	b.putTally(id, &tally)
	b.putVoteReceipt(id, caller, &dao.VoteReceipt{Choice: choice, Weight: acc.VotingPower})
	b.apply()

	emitVoteCasted(id, caller.String(), choice, acc.VotingPower)
	return "voted"
}
