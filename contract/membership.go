package contract

import (
	"okinoko_council/contract/dao"
)

// join admits the caller. Tier 0 is free, tier 1 needs the sponsor deposit in the group.
// Example args: ["join", 0x01]
func join() string {
	caller := getSenderAddress()
	rawTier := argUint64(1, "tier")
	if rawTier > uint64(dao.TierSponsor) {
		abortf(KindValidation, "unknown tier %d", rawTier)
	}
	tier := dao.Tier(rawTier)

	if _, ok := loadAccount(caller); ok {
		abortf(KindAuthorization, "%s is already a member", caller)
	}
	cfg := loadConfig()

	acc := &dao.Account{
		VotingPower: StandardVotingPower,
		JoinTime:    nowUnix(),
	}
	var deposit uint64
	if tier == dao.TierSponsor {
		deposit = requireSponsorDeposit(caller)
		creditTreasury(cfg, deposit)
		acc.VotingPower = SponsorVotingPower
	}

	b := newBatch()
	b.putAccount(caller, acc)
	if deposit > 0 {
		b.putConfig(cfg)
	}
	b.apply()

	emitJoinedEvent(caller.String(), tier, acc.VotingPower)
	if deposit > 0 {
		emitFundsAdded(caller.String(), deposit)
	}
	return "joined"
}
