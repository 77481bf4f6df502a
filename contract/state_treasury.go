package contract

import "okinoko_council/contract/dao"

// creditTreasury adds amount to the treasury held in cfg.
func creditTreasury(cfg *dao.GlobalConfig, amount uint64) {
	next, ok := addUint64(cfg.Treasury, amount)
	if !ok {
		abortf(KindArithmetic, "treasury overflow")
	}
	cfg.Treasury = next
}

// debitTreasury takes amount out of the treasury, re-checked against the balance right now
// since it may have shrunk after the proposal was accepted.
func debitTreasury(cfg *dao.GlobalConfig, amount uint64) {
	next, ok := subUint64(cfg.Treasury, amount)
	if !ok {
		abortf(KindArithmetic, "treasury holds %d, cannot pay out %d", cfg.Treasury, amount)
	}
	cfg.Treasury = next
}
