package explorer

import (
	"github.com/pkg/errors"

	"okinoko_council/contract"
	"okinoko_council/contract/dao"
	"okinoko_council/ledger"
	"okinoko_council/sdk"
)

// ErrNotFound is returned for proposals or members that do not exist.
var ErrNotFound = errors.New("not found")

// Source is anything that can hand out a consistent view of committed state.
type Source interface {
	View(fn func(ledger.Reader) error) error
}

// State decodes the council's records out of raw ledger state. It is the off-ledger
// read side: listing, member lookups and treasury, none of which are contract actions.
type State struct {
	src Source
}

func NewState(src Source) *State {
	return &State{src: src}
}

// Member is what the frontend shows for an account.
type Member struct {
	Address     string `json:"address"`
	IsMember    bool   `json:"is_member"`
	VotingPower uint64 `json:"voting_power"`
	JoinTime    uint64 `json:"join_time"`
	Tier        string `json:"tier,omitempty"`
}

// Treasury compares the tracked treasury with what the application account actually holds.
type Treasury struct {
	Balance uint64 `json:"balance"`
	Held    uint64 `json:"held"`
	Round   uint64 `json:"round"`
}

func readConfig(r ledger.Reader) (*dao.GlobalConfig, error) {
	raw, err := r.Global(dao.ConfigKey())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Wrap(ErrNotFound, "config")
	}
	cfg, err := dao.DecodeGlobalConfig([]byte(*raw))
	return cfg, errors.Wrap(err, "decode config")
}

func readProposal(r ledger.Reader, id uint64) (dao.ProposalView, error) {
	raw, err := r.Global(dao.ProposalKey(id))
	if err != nil {
		return dao.ProposalView{}, err
	}
	if raw == nil {
		return dao.ProposalView{}, errors.Wrapf(ErrNotFound, "proposal %d", id)
	}
	p, err := dao.DecodeProposal([]byte(*raw))
	if err != nil {
		return dao.ProposalView{}, errors.Wrapf(err, "decode proposal %d", id)
	}
	tally := &dao.Tally{}
	if raw, err = r.Global(dao.TallyKey(id)); err != nil {
		return dao.ProposalView{}, err
	}
	if raw != nil {
		if tally, err = dao.DecodeTally([]byte(*raw)); err != nil {
			return dao.ProposalView{}, errors.Wrapf(err, "decode tally %d", id)
		}
	}
	return dao.NewProposalView(p, tally, r.Timestamp()), nil
}

// Config returns the global config record.
func (s *State) Config() (cfg *dao.GlobalConfig, err error) {
	err = s.src.View(func(r ledger.Reader) error {
		cfg, err = readConfig(r)
		return err
	})
	return cfg, err
}

// Proposal returns one proposal with its tally and status.
func (s *State) Proposal(id uint64) (view dao.ProposalView, err error) {
	err = s.src.View(func(r ledger.Reader) error {
		view, err = readProposal(r, id)
		return err
	})
	return view, err
}

// Proposals lists every proposal from 1 to proposal_count.
func (s *State) Proposals() (views dao.ProposalViews, err error) {
	err = s.src.View(func(r ledger.Reader) error {
		cfg, err := readConfig(r)
		if err != nil {
			return err
		}
		views = make(dao.ProposalViews, 0, cfg.ProposalCount)
		for id := uint64(1); id <= cfg.ProposalCount; id++ {
			v, err := readProposal(r, id)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	return views, err
}

// Member looks up an account. Non-members come back with IsMember false, not an error.
func (s *State) Member(addr sdk.Address) (m Member, err error) {
	m.Address = addr.String()
	err = s.src.View(func(r ledger.Reader) error {
		raw, err := r.Local(addr, dao.AccountKey())
		if err != nil || raw == nil {
			return err
		}
		acc, err := dao.DecodeAccount([]byte(*raw))
		if err != nil {
			return errors.Wrapf(err, "decode account %s", addr)
		}
		m.IsMember = true
		m.VotingPower = acc.VotingPower
		m.JoinTime = acc.JoinTime
		m.Tier = dao.TierForPower(acc.VotingPower, contract.SponsorVotingPower).String()
		return nil
	})
	return m, err
}

// Vote returns the receipt of addr on proposal id, nil when it did not vote.
func (s *State) Vote(id uint64, addr sdk.Address) (rec *dao.VoteReceipt, err error) {
	err = s.src.View(func(r ledger.Reader) error {
		raw, err := r.Global(dao.VoteKey(id, dao.Address(addr)))
		if err != nil || raw == nil {
			return err
		}
		rec, err = dao.DecodeVoteReceipt([]byte(*raw))
		return err
	})
	return rec, err
}

func (s *State) Treasury() (t Treasury, err error) {
	err = s.src.View(func(r ledger.Reader) error {
		cfg, err := readConfig(r)
		if err != nil {
			return err
		}
		t.Balance = cfg.Treasury
		t.Round = r.Round()
		if app, ok := r.AppAddress(); ok {
			t.Held, err = r.Balance(app)
		}
		return err
	})
	return t, err
}

// Round is the last committed round, the cache key for everything above.
func (s *State) Round() (round uint64) {
	_ = s.src.View(func(r ledger.Reader) error {
		round = r.Round()
		return nil
	})
	return round
}
