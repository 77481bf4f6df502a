package contract_test

import (
	"strings"
	"testing"

	"github.com/CosmWasm/tinyjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_council/contract"
	"okinoko_council/contract/dao"
)

func TestCreateGovernanceProposal(t *testing.T) {
	l := setupContractTest(t)
	joinStandard(t, l, "alice")

	res, _ := callContract(t, l, "alice", contract.CreateProposalArgs("rename", "call it the council", dao.ProposalGovernance, 0, ""), true)
	assert.Equal(t, "1", res.Return())
	assert.Equal(t, []string{"pc|id:1|by:alice|t:governance|am:0"}, res.Logs())

	view, err := state(l).Proposal(1)
	require.NoError(t, err)
	p := view.Proposal
	assert.Equal(t, "rename", p.Title)
	assert.Equal(t, "call it the council", p.Description)
	assert.Equal(t, dao.ProposalGovernance, p.Type)
	assert.Equal(t, uint64(0), p.Amount)
	assert.Equal(t, dao.Address("alice"), p.Creator)
	assert.Equal(t, defaultTimestamp, p.CreatedAt)
	assert.Equal(t, defaultTimestamp+contract.DefaultVotingPeriod, p.Deadline)
	assert.False(t, p.Executed)
	assert.Equal(t, dao.Tally{}, view.Votes)
	assert.Equal(t, uint64(1), config(t, l).ProposalCount)
}

// TestProposalIdsAreDense checks ids run 1..n without gaps, also across rejected attempts.
func TestProposalIdsAreDense(t *testing.T) {
	l := setupContractTest(t)
	joinStandard(t, l, "alice", "bob")

	assert.Equal(t, uint64(1), createProposal(t, l, "alice", dao.ProposalGovernance, 0))
	callContract(t, l, "bob", contract.CreateProposalArgs("", "empty title", dao.ProposalMembership, 0, ""), false)
	assert.Equal(t, uint64(2), createProposal(t, l, "bob", dao.ProposalMembership, 0))
	assert.Equal(t, uint64(3), createProposal(t, l, "alice", dao.ProposalGovernance, 0))

	views, err := state(l).Proposals()
	require.NoError(t, err)
	require.Len(t, views, 3)
	for i, v := range views {
		assert.Equal(t, uint64(i+1), v.Proposal.ID)
	}
}

func TestCreateProposalValidation(t *testing.T) {
	l := setupContractTest(t)
	joinStandard(t, l, "alice")
	joinSponsor(t, l, "bob")

	cases := []struct {
		name   string
		sender string
		args   [][]byte
		fault  string
	}{
		{"non member", "outsider", contract.CreateProposalArgs("t", "d", dao.ProposalGovernance, 0, ""), "authorization: outsider is not a member"},
		{"empty title", "alice", contract.CreateProposalArgs("", "d", dao.ProposalGovernance, 0, ""), "title must not be empty"},
		{"long title", "alice", contract.CreateProposalArgs(strings.Repeat("t", contract.MaxTitleLength+1), "d", dao.ProposalGovernance, 0, ""), "title exceeds 128 bytes"},
		{"empty description", "alice", contract.CreateProposalArgs("t", "", dao.ProposalGovernance, 0, ""), "description must not be empty"},
		{"long description", "alice", contract.CreateProposalArgs("t", strings.Repeat("d", contract.MaxDescriptionLength+1), dao.ProposalGovernance, 0, ""), "description exceeds 1024 bytes"},
		{"missing type", "alice", [][]byte{[]byte("create_proposal"), []byte("t"), []byte("d")}, "proposal type required"},
		{"unknown type", "alice", [][]byte{[]byte("create_proposal"), []byte("t"), []byte("d"), []byte("grant")}, "unknown proposal type"},
		{"zero amount", "alice", contract.CreateProposalArgs("t", "d", dao.ProposalTreasury, 0, ""), "amount must be greater than zero"},
		{"missing amount", "alice", [][]byte{[]byte("create_proposal"), []byte("t"), []byte("d"), []byte("treasury")}, "amount required"},
		{"amount above treasury", "bob", contract.CreateProposalArgs("t", "d", dao.ProposalTreasury, 11, ""), "state: amount 11 exceeds treasury 10"},
		{"bad recipient", "bob", contract.CreateProposalArgs("t", "d", dao.ProposalTreasury, 5, "not valid"), "invalid recipient"},
		{"recipient with event separator", "bob", contract.CreateProposalArgs("t", "d", dao.ProposalTreasury, 5, "mallory|id:99"), "validation: invalid recipient"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := callContract(t, l, sdkAddr(tc.sender), tc.args, false)
			requireAbort(t, err, tc.fault)
		})
	}
	assert.Equal(t, uint64(0), config(t, l).ProposalCount)
}

func TestCreateTreasuryProposalRecipient(t *testing.T) {
	l := setupContractTest(t)
	joinSponsor(t, l, "bob")

	callContract(t, l, "bob", contract.CreateProposalArgs("grant", "pay carol", dao.ProposalTreasury, 4, "carol"), true)
	res, _ := callContract(t, l, "bob", contract.CreateProposalArgs("grant", "pay me", dao.ProposalTreasury, 10, ""), true)
	assert.Equal(t, []string{"pc|id:2|by:bob|t:treasury|am:10"}, res.Logs())

	first, err := state(l).Proposal(1)
	require.NoError(t, err)
	assert.Equal(t, dao.Address("carol"), first.Proposal.Recipient)
	assert.Equal(t, uint64(4), first.Proposal.Amount)

	second, err := state(l).Proposal(2)
	require.NoError(t, err)
	assert.Equal(t, dao.Address("bob"), second.Proposal.Recipient, "recipient defaults to the creator")

	// creation reserves nothing
	assert.Equal(t, uint64(10), config(t, l).Treasury)
}

func TestGetProposal(t *testing.T) {
	l := setupContractTest(t)
	joinStandard(t, l, "alice")
	createProposal(t, l, "alice", dao.ProposalGovernance, 0)
	round := state(l).Round()

	// no membership needed to read
	res, _ := callContract(t, l, "outsider", contract.GetProposalArgs(1), true)
	assert.Equal(t,
		`{"id":1,"title":"proposal title","description":"proposal description","type":"governance","amount":0,`+
			`"recipient":"","creator":"alice","created":1756857600,"deadline":1757462400,"executed":false,`+
			`"votes":{"yes":0,"no":0,"abstain":0},"status":"active"}`,
		res.Return())
	assert.Empty(t, res.Logs())
	assert.Equal(t, round+1, state(l).Round())

	var view dao.ProposalView
	require.NoError(t, tinyjson.Unmarshal([]byte(res.Return()), &view))
	assert.Equal(t, dao.StatusActive, view.Status)
	assert.Equal(t, "proposal title", view.Proposal.Title)
}

func TestGetProposalStatusFollowsCallTime(t *testing.T) {
	l := setupContractTest(t)
	joinStandard(t, l, "alice", "bob")
	createProposal(t, l, "alice", dao.ProposalGovernance, 0)
	createProposal(t, l, "alice", dao.ProposalGovernance, 0)
	voteFor(t, l, 1, dao.ChoiceYes, "alice")
	voteFor(t, l, 2, dao.ChoiceNo, "bob")

	status := func(id uint64) dao.Status {
		res, err := callContractAt(t, l, "alice", contract.GetProposalArgs(id), true, afterDeadline)
		require.NoError(t, err)
		var view dao.ProposalView
		require.NoError(t, tinyjson.Unmarshal([]byte(res.Return()), &view))
		return view.Status
	}
	assert.Equal(t, dao.StatusPassed, status(1))
	assert.Equal(t, dao.StatusRejected, status(2))

	callContractAt(t, l, "alice", contract.ExecuteArgs(1), true, afterDeadline)
	assert.Equal(t, dao.StatusExecuted, status(1))
}

func TestGetProposalOutOfRange(t *testing.T) {
	l := setupContractTest(t)
	_, err := callContract(t, l, "alice", contract.GetProposalArgs(0), false)
	requireAbort(t, err, "proposal 0 out of range [1, 0]")
	_, err = callContract(t, l, "alice", contract.GetProposalArgs(1), false)
	requireAbort(t, err, "proposal 1 out of range")
	_, err = callContract(t, l, "alice", [][]byte{[]byte("get_proposal")}, false)
	requireAbort(t, err, "proposal id required")
}
