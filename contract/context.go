package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// cachedEnv is scoped to the currently executing call. Approve drops it before
// dispatching so a new call never sees the previous call's args or sender.
var (
	cachedEnv       sdk.Env
	cachedEnvLoaded bool
)

// currentEnv caches the env per call so we dont poke the host api every few lines and ensures
// subsequent helper calls (args, sender, timestamps) always see the same snapshot.
func currentEnv() *sdk.Env {
	if !cachedEnvLoaded {
		cachedEnv = sdk.GetEnv()
		cachedEnvLoaded = true
	}
	return &cachedEnv
}

// resetCallCache forgets everything memoized for the previous call.
func resetCallCache() {
	cachedEnv = sdk.Env{}
	cachedEnvLoaded = false
}

// getSenderAddress returns the address of the current transaction sender.
func getSenderAddress() sdk.Address {
	return currentEnv().Sender
}

// nowUnix is the ledger timestamp of the running call, never wall clock.
func nowUnix() uint64 {
	return currentEnv().Timestamp
}

// toDaoAddress bridges sdk and dao address types (aliases on wasm, plain strings on host).
func toDaoAddress(a sdk.Address) dao.Address {
	return dao.Address(a)
}

// requireSponsorDeposit finds the tier 1 payment in the atomic group and returns its amount.
// The host has already moved the funds when we get here, we only check it is the right one.
// Only the call right after the payment may claim it, so one payment backs one join.
func requireSponsorDeposit(caller sdk.Address) uint64 {
	env := currentEnv()
	if env.GroupIndex != SponsorTransferIndex+1 {
		abortf(KindState, "sponsor join must sit at group index %d", SponsorTransferIndex+1)
	}
	txn, ok := env.GroupTxn(SponsorTransferIndex)
	if !ok {
		abortf(KindState, "sponsor join requires a payment at group index %d", SponsorTransferIndex)
	}
	if txn.Type != sdk.TxnPayment {
		abortf(KindState, "group index %d is not a payment", SponsorTransferIndex)
	}
	if txn.Receiver != env.AppAddress {
		abortf(KindState, "sponsor payment must go to %s", env.AppAddress)
	}
	if txn.Sender != caller {
		abortf(KindState, "sponsor payment must come from the caller")
	}
	if txn.Amount != SponsorDeposit {
		abortf(KindState, "sponsor payment must be exactly %d", SponsorDeposit)
	}
	return txn.Amount
}
