package contract

// Action is the closed set of named calls. ActionUnknown is what every other
// name parses to and is rejected by the dispatcher.
type Action uint8

const (
	ActionUnknown Action = iota
	ActionJoin
	ActionCreateProposal
	ActionVote
	ActionExecute
	ActionGetProposal
)

func (a Action) String() string {
	switch a {
	case ActionJoin:
		return "join"
	case ActionCreateProposal:
		return "create_proposal"
	case ActionVote:
		return "vote"
	case ActionExecute:
		return "execute"
	case ActionGetProposal:
		return "get_proposal"
	default:
		return "unknown"
	}
}

// ParseAction maps arg 0 to an action.
// Example payload: ParseAction([]byte("vote"))
func ParseAction(name []byte) Action {
	switch string(name) {
	case "join":
		return ActionJoin
	case "create_proposal":
		return ActionCreateProposal
	case "vote":
		return ActionVote
	case "execute":
		return ActionExecute
	case "get_proposal":
		return ActionGetProposal
	default:
		return ActionUnknown
	}
}
