package indexer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"okinoko_council/ledger"
)

// GovernanceEvent is one application log line of a committed group.
type GovernanceEvent struct {
	ID         uint   `gorm:"primaryKey"`
	TxID       string `gorm:"size:64;index:idx_tx_seq,unique"`
	Seq        int    `gorm:"index:idx_tx_seq,unique"`
	Round      uint64 `gorm:"index"`
	Timestamp  uint64
	Kind       string `gorm:"size:8;index"`
	ProposalID uint64 `gorm:"index"`
	Account    string `gorm:"size:64;index"`
	Detail     string `gorm:"size:32"`
	Value      uint64
	Raw        string `gorm:"size:512"`
	CreatedAt  time.Time
}

// Open connects to mysql.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, errors.Wrap(err, "mysql")
	}
	return db, nil
}

// Indexer mirrors the council's event log into sql for history queries.
type Indexer struct {
	db  *gorm.DB
	log *logrus.Entry
}

func New(db *gorm.DB, log *logrus.Logger) *Indexer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Indexer{db: db, log: log.WithField("component", "indexer")}
}

func (ix *Indexer) Migrate() error {
	return ix.db.AutoMigrate(&GovernanceEvent{})
}

// Rows turns a group's logs into rows. Lines that are not events are skipped.
func (ix *Indexer) Rows(res ledger.GroupResult) []GovernanceEvent {
	var rows []GovernanceEvent
	for seq, line := range res.Logs() {
		ev, err := ParseEvent(line)
		if err != nil {
			ix.log.WithError(err).WithField("txid", res.TxID).Warn("skipping log line")
			continue
		}
		row := GovernanceEvent{
			TxID:      res.TxID,
			Seq:       seq,
			Round:     res.Round,
			Timestamp: res.Timestamp,
			Kind:      string(ev.Kind),
			Account:   ev.Account(),
			Detail:    ev.Detail(),
			Raw:       line,
		}
		if row.ProposalID, err = ev.Uint("id"); err == nil {
			row.Value, err = ev.Value()
		}
		if err != nil {
			ix.log.WithError(err).WithField("txid", res.TxID).Warn("skipping log line")
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Record stores every event of a committed group in one transaction.
func (ix *Indexer) Record(ctx context.Context, res ledger.GroupResult) error {
	rows := ix.Rows(res)
	if len(rows) == 0 {
		return nil
	}
	err := ix.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	return errors.Wrapf(err, "index group %s", res.TxID)
}

// Hook adapts Record to a ledger commit hook. Failures are logged, the group
// is already committed by the time we see it.
func (ix *Indexer) Hook() func(ledger.GroupResult) {
	return func(res ledger.GroupResult) {
		if err := ix.Record(context.Background(), res); err != nil {
			ix.log.WithError(err).Error("indexing failed")
		}
	}
}

// History lists the events of one proposal in commit order.
func (ix *Indexer) History(ctx context.Context, proposalID uint64) ([]GovernanceEvent, error) {
	var rows []GovernanceEvent
	err := ix.db.WithContext(ctx).
		Where("proposal_id = ? AND kind IN ?", proposalID, []string{string(KindProposalCreated), string(KindVoteCast), string(KindProposalExecuted), string(KindFundsRemoved)}).
		Order("round, seq").
		Find(&rows).Error
	return rows, errors.Wrap(err, "history")
}
