package indexer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"okinoko_council/ledger"
)

func newMockIndexer(t *testing.T) (*Indexer, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(gdb, log), mock
}

func TestParseEvent(t *testing.T) {
	cases := []struct {
		line    string
		kind    Kind
		account string
		detail  string
		id      uint64
		value   uint64
	}{
		{"init|mvp:1|vp:604800", KindInit, "", "", 0, 604800},
		{"mj|by:alice|tier:1|vp:10", KindMemberJoined, "alice", "1", 0, 10},
		{"af|by:alice|am:10", KindFundsAdded, "alice", "", 0, 10},
		{"pc|id:3|by:bob|t:treasury|am:7", KindProposalCreated, "bob", "treasury", 3, 7},
		{"v|id:3|by:carol|c:abstain|w:1", KindVoteCast, "carol", "abstain", 3, 1},
		{"px|id:3|by:carol", KindProposalExecuted, "carol", "", 3, 0},
		{"rf|id:3|to:app:2|am:7", KindFundsRemoved, "app:2", "", 3, 7},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			ev, err := ParseEvent(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, ev.Kind)
			assert.Equal(t, tc.account, ev.Account())
			assert.Equal(t, tc.detail, ev.Detail())
			id, err := ev.Uint("id")
			require.NoError(t, err)
			assert.Equal(t, tc.id, id)
			v, err := ev.Value()
			require.NoError(t, err)
			assert.Equal(t, tc.value, v)
		})
	}
}

func TestParseEventRejects(t *testing.T) {
	_, err := ParseEvent("zz|by:alice")
	assert.True(t, errors.Is(err, ErrUnknownEvent))

	_, err = ParseEvent("v|id:1|by:alice|c:yes")
	assert.ErrorContains(t, err, "v event without w")

	_, err = ParseEvent("px|id:1|alice")
	assert.ErrorContains(t, err, "malformed field")

	_, err = ParseEvent("rf|id:1|to:mallory|id:99|am:5")
	assert.ErrorContains(t, err, `duplicate field "id"`)

	ev, err := ParseEvent("px|id:one|by:alice")
	require.NoError(t, err)
	_, err = ev.Uint("id")
	assert.Error(t, err)
}

func TestRowsSkipsNoise(t *testing.T) {
	ix, _ := newMockIndexer(t)
	res := ledger.GroupResult{TxID: "tx-1", Round: 4, Timestamp: 99, Calls: []ledger.CallResult{
		{Logs: []string{"mj|by:bob|tier:1|vp:10", "debug output"}},
		{Logs: []string{"af|by:bob|am:10", "pc|id:x|by:bob|t:governance|am:0"}},
	}}

	rows := ix.Rows(res)
	require.Len(t, rows, 2)
	assert.Equal(t, GovernanceEvent{TxID: "tx-1", Seq: 0, Round: 4, Timestamp: 99, Kind: "mj", Account: "bob", Detail: "1", Value: 10, Raw: "mj|by:bob|tier:1|vp:10"}, rows[0])
	assert.Equal(t, 2, rows[1].Seq)
	assert.Equal(t, "af", rows[1].Kind)
}

func TestRecordWritesOneTransaction(t *testing.T) {
	ix, mock := newMockIndexer(t)
	res := ledger.GroupResult{TxID: "tx-2", Round: 7, Calls: []ledger.CallResult{
		{Logs: []string{"px|id:1|by:alice", "rf|id:1|to:carol|am:4"}},
	}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `governance_events`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	require.NoError(t, ix.Record(context.Background(), res))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRollsBack(t *testing.T) {
	ix, mock := newMockIndexer(t)
	res := ledger.GroupResult{TxID: "tx-3", Calls: []ledger.CallResult{{Logs: []string{"px|id:1|by:alice"}}}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `governance_events`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := ix.Record(context.Background(), res)
	assert.ErrorContains(t, err, "index group tx-3")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordWithoutEvents(t *testing.T) {
	ix, mock := newMockIndexer(t)
	require.NoError(t, ix.Record(context.Background(), ledger.GroupResult{TxID: "tx-4"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory(t *testing.T) {
	ix, mock := newMockIndexer(t)
	rows := sqlmock.NewRows([]string{"id", "tx_id", "seq", "round", "kind", "proposal_id", "account", "detail", "value"}).
		AddRow(1, "tx-a", 0, 3, "pc", 1, "bob", "governance", 0).
		AddRow(2, "tx-b", 0, 4, "v", 1, "alice", "yes", 1)
	mock.ExpectQuery("SELECT \\* FROM `governance_events` WHERE proposal_id = \\? AND kind IN").
		WillReturnRows(rows)

	got, err := ix.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v", got[1].Kind)
	assert.Equal(t, "yes", got[1].Detail)
	require.NoError(t, mock.ExpectationsWereMet())
}
