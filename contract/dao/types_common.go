package dao

// GlobalConfig is the application-wide singleton.
type GlobalConfig struct {
	ProposalCount  uint64
	Treasury       uint64
	MinVotingPower uint64
	VotingPeriod   uint64
}

// Account is a member slice in the local partition.
type Account struct {
	VotingPower uint64
	JoinTime    uint64
}

// Tier is the admission tier requested on join.
type Tier uint8

const (
	TierStandard Tier = 0
	TierSponsor  Tier = 1
)

// String returns the labels the frontend shows for a tier.
// Example payload: dao.TierSponsor.String()
func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "basic"
	case TierSponsor:
		return "lead"
	default:
		return "unknown"
	}
}

// TierForPower guesses the tier back from an account's voting power.
func TierForPower(power, sponsorPower uint64) Tier {
	if power >= sponsorPower {
		return TierSponsor
	}
	return TierStandard
}

// ProposalType is the closed set of proposal kinds.
type ProposalType uint8

const (
	ProposalTypeUnspecified ProposalType = 0
	ProposalTreasury        ProposalType = 1
	ProposalGovernance      ProposalType = 2
	ProposalMembership      ProposalType = 3
)

// String prints the type the way it travels in call arguments.
// Example payload: dao.ProposalTreasury.String()
func (pt ProposalType) String() string {
	switch pt {
	case ProposalTreasury:
		return "treasury"
	case ProposalGovernance:
		return "governance"
	case ProposalMembership:
		return "membership"
	default:
		return "unspecified"
	}
}

// ParseProposalType maps the argument bytes to a type; anything else is rejected.
// Example payload: dao.ParseProposalType("governance")
func ParseProposalType(s string) (ProposalType, bool) {
	switch s {
	case "treasury":
		return ProposalTreasury, true
	case "governance":
		return ProposalGovernance, true
	case "membership":
		return ProposalMembership, true
	}
	return ProposalTypeUnspecified, false
}

// Choice is a vote option.
type Choice uint8

const (
	ChoiceUnspecified Choice = 0
	ChoiceYes         Choice = 1
	ChoiceNo          Choice = 2
	ChoiceAbstain     Choice = 3
)

func (c Choice) String() string {
	switch c {
	case ChoiceYes:
		return "yes"
	case ChoiceNo:
		return "no"
	case ChoiceAbstain:
		return "abstain"
	default:
		return "unspecified"
	}
}

// ParseChoice accepts yes, no and abstain.
// Example payload: dao.ParseChoice("abstain")
func ParseChoice(s string) (Choice, bool) {
	switch s {
	case "yes":
		return ChoiceYes, true
	case "no":
		return ChoiceNo, true
	case "abstain":
		return ChoiceAbstain, true
	}
	return ChoiceUnspecified, false
}

// Proposal is the stored governance item. Type and Deadline never change after creation.
type Proposal struct {
	ID          uint64
	Creator     Address
	Title       string
	Description string
	Type        ProposalType
	Amount      uint64
	Recipient   Address
	CreatedAt   uint64
	Deadline    uint64
	Executed    bool
}

// Tally holds the weighted per-choice totals of one proposal.
type Tally struct {
	Yes     uint64
	No      uint64
	Abstain uint64
}

// Add returns the tally with weight added to choice. ok is false on an unknown
// choice or when the counter would overflow.
func (t Tally) Add(c Choice, weight uint64) (Tally, bool) {
	var slot *uint64
	switch c {
	case ChoiceYes:
		slot = &t.Yes
	case ChoiceNo:
		slot = &t.No
	case ChoiceAbstain:
		slot = &t.Abstain
	default:
		return t, false
	}
	if *slot > ^uint64(0)-weight {
		return t, false
	}
	*slot += weight
	return t, true
}

// Passing is the simple majority rule: more yes than no and at least one yes.
func (t Tally) Passing() bool {
	return t.Yes > t.No && t.Yes > 0
}

// VoteReceipt marks that an account voted on a proposal and how.
type VoteReceipt struct {
	Choice Choice
	Weight uint64
}

// Status is derived for readers, it is never stored.
type Status uint8

const (
	StatusActive   Status = 1
	StatusPassed   Status = 2
	StatusRejected Status = 3
	StatusExecuted Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPassed:
		return "passed"
	case StatusRejected:
		return "rejected"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// StatusAt derives the lifecycle status of p at ledger time now.
func (p *Proposal) StatusAt(t Tally, now uint64) Status {
	switch {
	case p.Executed:
		return StatusExecuted
	case now <= p.Deadline:
		return StatusActive
	case t.Passing():
		return StatusPassed
	default:
		return StatusRejected
	}
}
