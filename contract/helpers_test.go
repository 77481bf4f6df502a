package contract_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_council/contract"
	"okinoko_council/contract/dao"
	"okinoko_council/explorer"
	"okinoko_council/ledger"
	"okinoko_council/sdk"
)

const creator = sdk.Address("creator")

// defaultTimestamp is 2025-09-03T00:00:00Z.
const defaultTimestamp uint64 = 1_756_857_600

// afterDeadline is one second past the deadline of a proposal created at defaultTimestamp.
const afterDeadline = defaultTimestamp + contract.DefaultVotingPeriod + 1

var appAddress = sdk.AppAddress(1)

// setupContractTest deploys a fresh council on an in-memory ledger and funds a few accounts.
func setupContractTest(t *testing.T) *ledger.Ledger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	l, err := ledger.New(ledger.NewMemoryStore(), contract.Approve, ledger.WithLogger(logger))
	require.NoError(t, err)
	_, err = l.Deploy(context.Background(), creator, defaultTimestamp)
	require.NoError(t, err)
	for _, acct := range []sdk.Address{"alice", "bob", "carol", "outsider"} {
		require.NoError(t, l.Fund(acct, 1_000))
	}
	return l
}

// callContract executes a single call at the default timestamp and asserts the outcome.
func callContract(t *testing.T, l *ledger.Ledger, sender sdk.Address, args [][]byte, expectedResult bool) (ledger.GroupResult, error) {
	return callContractAt(t, l, sender, args, expectedResult, defaultTimestamp)
}

// callContractAt lets tests move the ledger clock for deadline checks.
func callContractAt(t *testing.T, l *ledger.Ledger, sender sdk.Address, args [][]byte, expectedResult bool, ts uint64) (ledger.GroupResult, error) {
	return submit(t, l, ledger.Group{Timestamp: ts, Txns: []ledger.Txn{ledger.Call(sender, args)}}, expectedResult)
}

// submit runs a whole group and asserts whether it committed.
func submit(t *testing.T, l *ledger.Ledger, g ledger.Group, expectedResult bool) (ledger.GroupResult, error) {
	t.Helper()
	res, err := l.SubmitGroup(context.Background(), g)
	if expectedResult {
		assert.NoError(t, err, "group failed")
	} else {
		assert.Error(t, err, "group did not fail (as expected)")
	}
	return res, err
}

// sponsorGroup is the canonical tier 1 join: payment at index 0, call at index 1.
func sponsorGroup(sender sdk.Address, amount uint64) ledger.Group {
	return ledger.Group{Timestamp: defaultTimestamp, Txns: []ledger.Txn{
		ledger.Pay(sender, appAddress, amount),
		ledger.Call(sender, contract.JoinArgs(dao.TierSponsor)),
	}}
}

func joinStandard(t *testing.T, l *ledger.Ledger, accounts ...sdk.Address) {
	for _, a := range accounts {
		callContract(t, l, a, contract.JoinArgs(dao.TierStandard), true)
	}
}

func joinSponsor(t *testing.T, l *ledger.Ledger, accounts ...sdk.Address) {
	for _, a := range accounts {
		submit(t, l, sponsorGroup(a, contract.SponsorDeposit), true)
	}
}

// createProposal creates a proposal and returns the id the contract handed back.
func createProposal(t *testing.T, l *ledger.Ledger, sender sdk.Address, pt dao.ProposalType, amount uint64) uint64 {
	res, err := callContract(t, l, sender, contract.CreateProposalArgs("proposal title", "proposal description", pt, amount, ""), true)
	require.NoError(t, err)
	var id uint64
	_, err = fmt.Sscan(res.Return(), &id)
	require.NoError(t, err)
	return id
}

func voteFor(t *testing.T, l *ledger.Ledger, id uint64, choice dao.Choice, voters ...sdk.Address) {
	for _, v := range voters {
		callContract(t, l, v, contract.VoteArgs(id, choice), true)
	}
}

func requireAbort(t *testing.T, err error, contains string) {
	t.Helper()
	msg, ok := ledger.AbortMessage(err)
	require.True(t, ok, "expected an application abort, got %v", err)
	assert.Contains(t, msg, contains)
}

func state(l *ledger.Ledger) *explorer.State {
	return explorer.NewState(l)
}

func config(t *testing.T, l *ledger.Ledger) *dao.GlobalConfig {
	cfg, err := state(l).Config()
	require.NoError(t, err)
	return cfg
}

func tally(t *testing.T, l *ledger.Ledger, id uint64) dao.Tally {
	view, err := state(l).Proposal(id)
	require.NoError(t, err)
	return view.Votes
}

func member(t *testing.T, l *ledger.Ledger, addr sdk.Address) explorer.Member {
	m, err := state(l).Member(addr)
	require.NoError(t, err)
	return m
}

func hookGroup(sender sdk.Address, oc sdk.OnCompletion) ledger.Group {
	return ledger.Group{Timestamp: defaultTimestamp, Txns: []ledger.Txn{ledger.Hook(sender, oc)}}
}

func sdkAddr(s string) sdk.Address {
	return sdk.Address(s)
}
