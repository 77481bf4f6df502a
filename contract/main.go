////////////////////////////////////////////////////////////////////////////////
// Okinoko Council: tiered membership governance with a shared treasury
////////////////////////////////////////////////////////////////////////////////

package contract

import (
	"okinoko_council/sdk"
)

// Approve is the single entry point the host runs for every application call.
// It returns the call's return value; any failure aborts and never returns.
func Approve() string {
	resetCallCache()
	env := currentEnv()

	if env.Creating {
		return initialize()
	}

	switch env.OnCompletion {
	case sdk.NoOp:
		return route(ParseAction(argBytes(0, "action")))
	case sdk.OptIn, sdk.CloseOut, sdk.ClearState:
		// nothing to do, the host owns local slices of joining and leaving accounts
		return "ok"
	case sdk.UpdateApplication:
		abortf(KindAuthorization, "application code is immutable")
	case sdk.DeleteApplication:
		abortf(KindAuthorization, "application cannot be deleted")
	default:
		abortf(KindValidation, "unknown lifecycle hook %d", env.OnCompletion)
	}
	return ""
}

// route dispatches a named call. The switch is exhaustive over Action.
func route(action Action) string {
	switch action {
	case ActionJoin:
		return join()
	case ActionCreateProposal:
		return createProposal()
	case ActionVote:
		return vote()
	case ActionExecute:
		return execute()
	case ActionGetProposal:
		return getProposal()
	case ActionUnknown:
		abortf(KindValidation, "unknown action %q", string(argBytes(0, "action")))
	}
	return ""
}

// -----------------------------------------------------------------------------
// Contract Initialization
// -----------------------------------------------------------------------------

// initialize runs on the creating call and writes the default config.
func initialize() string {
	if isContractInitialized() {
		abortf(KindState, "contract already initialized")
	}
	cfg := defaultConfig()
	b := newBatch()
	b.putConfig(cfg)
	b.apply()

	emitInitEvent(cfg)
	return "initialized"
}
