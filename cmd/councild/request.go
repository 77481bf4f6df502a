package main

import (
	"context"

	"github.com/pkg/errors"

	"okinoko_council/contract"
	"okinoko_council/contract/dao"
	"okinoko_council/ledger"
	"okinoko_council/sdk"
)

// request is one thing a user asks the council to do, from flags or a replay step.
type request struct {
	Action      string `yaml:"action"`
	From        string `yaml:"from"`
	At          uint64 `yaml:"at"`
	Account     string `yaml:"account"`
	Amount      uint64 `yaml:"amount"`
	Tier        uint8  `yaml:"tier"`
	Deposit     uint64 `yaml:"deposit"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Recipient   string `yaml:"recipient"`
	ID          uint64 `yaml:"id"`
	Choice      string `yaml:"choice"`
}

var errUnknownRequest = errors.New("unknown action")

// submit turns r into a group and runs it. fund has no group and returns an empty result.
func submit(ctx context.Context, l *ledger.Ledger, r request) (ledger.GroupResult, error) {
	from := sdk.Address(r.From)
	switch r.Action {
	case "deploy":
		return l.Deploy(ctx, from, r.At)
	case "fund":
		account := sdk.Address(r.Account)
		if account == "" {
			account = from
		}
		return ledger.GroupResult{}, l.Fund(account, r.Amount)
	}

	g := ledger.Group{Timestamp: r.At}
	switch r.Action {
	case "join":
		if dao.Tier(r.Tier) == dao.TierSponsor {
			app, err := appAddress(l)
			if err != nil {
				return ledger.GroupResult{}, err
			}
			g.Txns = append(g.Txns, ledger.Pay(from, app, r.Deposit))
		}
		g.Txns = append(g.Txns, ledger.Call(from, contract.JoinArgs(dao.Tier(r.Tier))))
	case "propose", contract.ActionCreateProposal.String():
		pt, ok := dao.ParseProposalType(r.Type)
		if !ok {
			return ledger.GroupResult{}, errors.Errorf("unknown proposal type %q", r.Type)
		}
		g.Txns = append(g.Txns, ledger.Call(from, contract.CreateProposalArgs(r.Title, r.Description, pt, r.Amount, r.Recipient)))
	case "vote":
		c, ok := dao.ParseChoice(r.Choice)
		if !ok {
			return ledger.GroupResult{}, errors.Errorf("unknown choice %q", r.Choice)
		}
		g.Txns = append(g.Txns, ledger.Call(from, contract.VoteArgs(r.ID, c)))
	case "execute":
		g.Txns = append(g.Txns, ledger.Call(from, contract.ExecuteArgs(r.ID)))
	case "show", contract.ActionGetProposal.String():
		g.Txns = append(g.Txns, ledger.Call(from, contract.GetProposalArgs(r.ID)))
	case "leave":
		g.Txns = append(g.Txns, ledger.Hook(from, sdk.CloseOut))
	case "clear":
		g.Txns = append(g.Txns, ledger.Hook(from, sdk.ClearState))
	default:
		return ledger.GroupResult{}, errors.Wrapf(errUnknownRequest, "%q", r.Action)
	}
	return l.SubmitGroup(ctx, g)
}

func appAddress(l *ledger.Ledger) (sdk.Address, error) {
	var app sdk.Address
	err := l.View(func(r ledger.Reader) error {
		var ok bool
		if app, ok = r.AppAddress(); !ok {
			return ledger.ErrNotDeployed
		}
		return nil
	})
	return app, err
}
