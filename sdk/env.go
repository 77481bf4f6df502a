package sdk

// OnCompletion names the lifecycle hook a call is made with.
type OnCompletion uint8

const (
	NoOp OnCompletion = iota
	OptIn
	CloseOut
	ClearState
	UpdateApplication
	DeleteApplication
)

// String prints the hook in the short form used by logs and the cli.
// Example payload: sdk.CloseOut.String()
func (oc OnCompletion) String() string {
	switch oc {
	case NoOp:
		return "noop"
	case OptIn:
		return "optin"
	case CloseOut:
		return "closeout"
	case ClearState:
		return "clear"
	case UpdateApplication:
		return "update"
	case DeleteApplication:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseOnCompletion is the inverse of String and reports false on unknown names.
func ParseOnCompletion(s string) (OnCompletion, bool) {
	for oc := NoOp; oc <= DeleteApplication; oc++ {
		if oc.String() == s {
			return oc, true
		}
	}
	return NoOp, false
}

type TxnType string

const (
	TxnPayment TxnType = "pay"
	TxnAppCall TxnType = "appl"
)

// Txn is one entry of the atomic group as the application sees it.
// Amount and Receiver are only meaningful for payments.
type Txn struct {
	Type     TxnType
	Sender   Address
	Receiver Address
	Amount   uint64
}

// Env is the read-only call context handed out by the host for the running call.
type Env struct {
	AppID        uint64
	AppAddress   Address
	TxId         string
	Round        uint64
	Timestamp    uint64
	Sender       Address
	OnCompletion OnCompletion
	Creating     bool
	Args         [][]byte
	GroupIndex   int
	Group        []Txn
}

// Arg returns the positional argument or false when the call carried fewer.
func (e *Env) Arg(i int) ([]byte, bool) {
	if i < 0 || i >= len(e.Args) {
		return nil, false
	}
	return e.Args[i], true
}

// GroupTxn returns the group entry at index i.
func (e *Env) GroupTxn(i int) (Txn, bool) {
	if i < 0 || i >= len(e.Group) {
		return Txn{}, false
	}
	return e.Group[i], true
}
