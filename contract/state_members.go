package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// loadAccount decodes the caller's local slice, ok is false for non-members.
func loadAccount(addr sdk.Address) (*dao.Account, bool) {
	ptr := sdk.LocalGetObject(addr, dao.AccountKey())
	if ptr == nil || *ptr == "" {
		return nil, false
	}
	acc, err := dao.DecodeAccount([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode account")
	}
	return acc, true
}

// requireMember returns the account or aborts with an authorization fault.
func requireMember(addr sdk.Address) *dao.Account {
	acc, ok := loadAccount(addr)
	if !ok {
		abortf(KindAuthorization, "%s is not a member", addr)
	}
	return acc
}

// requireVotingPower keeps accounts below the configured floor out of proposals and votes.
func requireVotingPower(acc *dao.Account, cfg *dao.GlobalConfig) {
	if acc.VotingPower < cfg.MinVotingPower {
		abortf(KindAuthorization, "voting power %d below minimum %d", acc.VotingPower, cfg.MinVotingPower)
	}
}
