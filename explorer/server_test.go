package explorer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CosmWasm/tinyjson"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_council/contract"
	"okinoko_council/contract/dao"
	"okinoko_council/explorer"
	"okinoko_council/ledger"
	"okinoko_council/sdk"
)

const ts uint64 = 1_756_857_600

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func submit(t *testing.T, l *ledger.Ledger, txns ...ledger.Txn) {
	t.Helper()
	_, err := l.SubmitGroup(context.Background(), ledger.Group{Timestamp: ts, Txns: txns})
	require.NoError(t, err)
}

// newCouncil deploys a council with a basic member, a lead member and one treasury proposal.
func newCouncil(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	opts = append([]ledger.Option{ledger.WithLogger(quietLogger())}, opts...)
	l, err := ledger.New(ledger.NewMemoryStore(), contract.Approve, opts...)
	require.NoError(t, err)
	_, err = l.Deploy(context.Background(), "creator", ts)
	require.NoError(t, err)
	require.NoError(t, l.Fund("bob", 100))

	submit(t, l, ledger.Call("alice", contract.JoinArgs(dao.TierStandard)))
	submit(t, l,
		ledger.Pay("bob", sdk.AppAddress(1), contract.SponsorDeposit),
		ledger.Call("bob", contract.JoinArgs(dao.TierSponsor)))
	submit(t, l, ledger.Call("bob", contract.CreateProposalArgs("grant", "pay carol", dao.ProposalTreasury, 6, "carol")))
	submit(t, l, ledger.Call("alice", contract.VoteArgs(1, dao.ChoiceYes)))
	return l
}

func newServer(t *testing.T, l *ledger.Ledger, cache explorer.Cache, m *ledger.Metrics) http.Handler {
	gin.SetMode(gin.TestMode)
	var reg *prometheus.Registry
	if m != nil {
		reg = m.Registry
	}
	return explorer.New(explorer.NewState(l), cache, reg, quietLogger())
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestProposalRoutes(t *testing.T) {
	l := newCouncil(t)
	h := newServer(t, l, nil, nil)

	rr := get(h, "/proposals/1")
	require.Equal(t, http.StatusOK, rr.Code)
	var view dao.ProposalView
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "grant", view.Proposal.Title)
	assert.Equal(t, dao.Address("carol"), view.Proposal.Recipient)
	assert.Equal(t, uint64(6), view.Proposal.Amount)
	assert.Equal(t, dao.Tally{Yes: 1}, view.Votes)
	assert.Equal(t, dao.StatusActive, view.Status)

	rr = get(h, "/proposals")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "treasury", list[0]["type"])

	assert.Equal(t, http.StatusNotFound, get(h, "/proposals/2").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/proposals/zero").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/proposals/0").Code)
}

func TestMemberRoute(t *testing.T) {
	l := newCouncil(t)
	h := newServer(t, l, nil, nil)

	var m explorer.Member
	rr := get(h, "/members/bob")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &m))
	assert.True(t, m.IsMember)
	assert.Equal(t, uint64(10), m.VotingPower)
	assert.Equal(t, "lead", m.Tier)
	assert.Equal(t, ts, m.JoinTime)

	rr = get(h, "/members/alice")
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, "basic", m.Tier)

	rr = get(h, "/members/nobody")
	require.Equal(t, http.StatusOK, rr.Code)
	m = explorer.Member{}
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &m))
	assert.False(t, m.IsMember)
	assert.Empty(t, m.Tier)
	assert.JSONEq(t, `{"address":"nobody","is_member":false,"voting_power":0,"join_time":0}`, rr.Body.String())
}

func TestTreasuryRoute(t *testing.T) {
	l := newCouncil(t)
	h := newServer(t, l, nil, nil)

	var tr explorer.Treasury
	rr := get(h, "/treasury")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &tr))
	assert.Equal(t, explorer.Treasury{Balance: 10, Held: 10, Round: 5}, tr)
	assert.JSONEq(t, `{"balance":10,"held":10,"round":5}`, rr.Body.String())
}

func TestCacheFollowsRound(t *testing.T) {
	l := newCouncil(t)
	cache := explorer.NewMemoryCache()
	h := newServer(t, l, cache, nil)

	assert.Equal(t, "miss", get(h, "/proposals/1").Header().Get("X-Cache"))
	assert.Equal(t, "hit", get(h, "/proposals/1").Header().Get("X-Cache"))
	assert.Equal(t, 1, cache.Len())

	submit(t, l, ledger.Call("bob", contract.VoteArgs(1, dao.ChoiceNo)))

	rr := get(h, "/proposals/1")
	assert.Equal(t, "miss", rr.Header().Get("X-Cache"))
	var view dao.ProposalView
	require.NoError(t, tinyjson.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, dao.Tally{Yes: 1, No: 10}, view.Votes)
	assert.Equal(t, 1, cache.Len(), "older rounds are dropped")
}

func TestMetricsAndHealth(t *testing.T) {
	m := ledger.NewMetrics()
	l := newCouncil(t, ledger.WithMetrics(m), ledger.WithActionLabels("join", "vote"))
	h := newServer(t, l, nil, m)

	rr := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `council_ledger_calls_total{action="join",outcome="committed"} 2`)
	assert.Contains(t, rr.Body.String(), "council_ledger_round 5")

	rr = get(h, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","round":5}`, rr.Body.String())

	assert.Equal(t, http.StatusNotFound, get(newServer(t, l, nil, nil), "/metrics").Code)
}

func TestCORS(t *testing.T) {
	l := newCouncil(t)
	h := newServer(t, l, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/treasury", nil)
	req.Header.Set("Origin", "https://council.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotDeployed(t *testing.T) {
	l, err := ledger.New(ledger.NewMemoryStore(), contract.Approve, ledger.WithLogger(quietLogger()))
	require.NoError(t, err)
	h := newServer(t, l, nil, nil)
	assert.Equal(t, http.StatusNotFound, get(h, "/treasury").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/proposals").Code)
}
