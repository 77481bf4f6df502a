package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// batch collects the writes of one action. Actions only read while validating and
// hand every write to the batch; apply runs once all checks passed, so an abort can
// never leave half an action behind.
type batch struct {
	writes    []write
	transfers []transfer
}

type write struct {
	local   bool
	account sdk.Address
	key     string
	value   string
}

type transfer struct {
	to     sdk.Address
	amount uint64
}

func newBatch() *batch {
	return &batch{}
}

func (b *batch) set(key string, value []byte) {
	b.writes = append(b.writes, write{key: key, value: string(value)})
}

func (b *batch) setLocal(account sdk.Address, key string, value []byte) {
	b.writes = append(b.writes, write{local: true, account: account, key: key, value: string(value)})
}

func (b *batch) putConfig(cfg *dao.GlobalConfig) {
	b.set(dao.ConfigKey(), dao.EncodeGlobalConfig(cfg))
}

func (b *batch) putAccount(account sdk.Address, acc *dao.Account) {
	b.setLocal(account, dao.AccountKey(), dao.EncodeAccount(acc))
}

func (b *batch) putProposal(p *dao.Proposal) {
	b.set(dao.ProposalKey(p.ID), dao.EncodeProposal(p))
}

func (b *batch) putTally(id uint64, t *dao.Tally) {
	b.set(dao.TallyKey(id), dao.EncodeTally(t))
}

func (b *batch) putVoteReceipt(id uint64, voter sdk.Address, r *dao.VoteReceipt) {
	b.set(dao.VoteKey(id, toDaoAddress(voter)), dao.EncodeVoteReceipt(r))
}

// pay queues a payout from the application account.
func (b *batch) pay(to sdk.Address, amount uint64) {
	b.transfers = append(b.transfers, transfer{to: to, amount: amount})
}

// apply flushes writes in order, then payouts.
func (b *batch) apply() {
	for _, w := range b.writes {
		if w.local {
			sdk.LocalSetObject(w.account, w.key, w.value)
			continue
		}
		sdk.StateSetObject(w.key, w.value)
	}
	for _, t := range b.transfers {
		sdk.Transfer(t.to, t.amount)
	}
}
