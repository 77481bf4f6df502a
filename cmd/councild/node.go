package main

import (
	"github.com/pkg/errors"

	"okinoko_council/contract"
	"okinoko_council/indexer"
	"okinoko_council/ledger"
)

var actionNames = []string{
	contract.ActionJoin.String(),
	contract.ActionCreateProposal.String(),
	contract.ActionVote.String(),
	contract.ActionExecute.String(),
	contract.ActionGetProposal.String(),
}

// node is an opened ledger plus what hangs off it.
type node struct {
	ledger  *ledger.Ledger
	metrics *ledger.Metrics
}

func (n *node) Close() error {
	return n.ledger.Close()
}

// openNode opens the ledger on leveldb, or in memory when no data dir is set,
// and wires the indexer in when a mysql dsn is configured.
func (a *app) openNode() (*node, error) {
	var store ledger.Store = ledger.NewMemoryStore()
	if dir := a.v.GetString(keyDataDir); dir != "" {
		db, err := ledger.OpenLevelDB(dir)
		if err != nil {
			return nil, err
		}
		store = db
	}

	m := ledger.NewMetrics()
	opts := []ledger.Option{
		ledger.WithLogger(a.log),
		ledger.WithMetrics(m),
		ledger.WithActionLabels(actionNames...),
	}
	if dsn := a.v.GetString(keyMySQLDSN); dsn != "" {
		db, err := indexer.Open(dsn)
		if err != nil {
			store.Close()
			return nil, err
		}
		ix := indexer.New(db, a.log)
		if err := ix.Migrate(); err != nil {
			store.Close()
			return nil, errors.Wrap(err, "migrate indexer")
		}
		opts = append(opts, ledger.OnCommit(ix.Hook()))
	}

	l, err := ledger.New(store, contract.Approve, opts...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &node{ledger: l, metrics: m}, nil
}
