package contract

// -----------------------------------------------------------------------------
// Voting Power
// -----------------------------------------------------------------------------

const (
	// StandardVotingPower is granted on a tier 0 join.
	StandardVotingPower uint64 = 1
	// SponsorVotingPower is granted on a paid tier 1 join.
	SponsorVotingPower uint64 = 10
)

// -----------------------------------------------------------------------------
// Sponsor Deposit
// -----------------------------------------------------------------------------

const (
	// SponsorDeposit is the exact payment a tier 1 join must carry.
	SponsorDeposit uint64 = 10
	// SponsorTransferIndex is the group position the deposit has to sit at.
	SponsorTransferIndex = 0
)

// -----------------------------------------------------------------------------
// Defaults written on creation
// -----------------------------------------------------------------------------

const (
	DefaultMinVotingPower uint64 = 1
	// DefaultVotingPeriod is seven days in seconds.
	DefaultVotingPeriod uint64 = 604800
)

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxTitleLength limits the size of proposal titles.
	MaxTitleLength = 128
	// MaxDescriptionLength limits the size of proposal descriptions.
	MaxDescriptionLength = 1024
	// maxUintArgLength is the widest big-endian integer argument we accept.
	maxUintArgLength = 8
)
