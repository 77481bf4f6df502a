package dao

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

// ProposalView is the read projection of a proposal: the record, its tallies
// and the status derived at read time.
type ProposalView struct {
	Proposal Proposal
	Votes    Tally
	Status   Status
}

// NewProposalView bundles a stored proposal with its tally as seen at now.
func NewProposalView(p *Proposal, t *Tally, now uint64) ProposalView {
	return ProposalView{Proposal: *p, Votes: *t, Status: p.StatusAt(*t, now)}
}

// MarshalTinyJSON writes the view the way get_proposal returns it.
func (v ProposalView) MarshalTinyJSON(w *jwriter.Writer) {
	p := &v.Proposal
	w.RawString(`{"id":`)
	w.Uint64(p.ID)
	w.RawString(`,"title":`)
	w.String(p.Title)
	w.RawString(`,"description":`)
	w.String(p.Description)
	w.RawString(`,"type":`)
	w.String(p.Type.String())
	w.RawString(`,"amount":`)
	w.Uint64(p.Amount)
	w.RawString(`,"recipient":`)
	w.String(addressString(p.Recipient))
	w.RawString(`,"creator":`)
	w.String(addressString(p.Creator))
	w.RawString(`,"created":`)
	w.Uint64(p.CreatedAt)
	w.RawString(`,"deadline":`)
	w.Uint64(p.Deadline)
	w.RawString(`,"executed":`)
	w.Bool(p.Executed)
	w.RawString(`,"votes":{"yes":`)
	w.Uint64(v.Votes.Yes)
	w.RawString(`,"no":`)
	w.Uint64(v.Votes.No)
	w.RawString(`,"abstain":`)
	w.Uint64(v.Votes.Abstain)
	w.RawString(`},"status":`)
	w.String(v.Status.String())
	w.RawByte('}')
}

// UnmarshalTinyJSON reads a view back, used by clients of get_proposal.
func (v *ProposalView) UnmarshalTinyJSON(in *jlexer.Lexer) {
	p := &v.Proposal
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "id":
			p.ID = in.Uint64()
		case "title":
			p.Title = in.String()
		case "description":
			p.Description = in.String()
		case "type":
			p.Type, _ = ParseProposalType(in.String())
		case "amount":
			p.Amount = in.Uint64()
		case "recipient":
			p.Recipient = newAddress(in.String())
		case "creator":
			p.Creator = newAddress(in.String())
		case "created":
			p.CreatedAt = in.Uint64()
		case "deadline":
			p.Deadline = in.Uint64()
		case "executed":
			p.Executed = in.Bool()
		case "votes":
			v.Votes.UnmarshalTinyJSON(in)
		case "status":
			v.Status = parseStatus(in.String())
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

func (t *Tally) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "yes":
			t.Yes = in.Uint64()
		case "no":
			t.No = in.Uint64()
		case "abstain":
			t.Abstain = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

func parseStatus(s string) Status {
	for st := StatusActive; st <= StatusExecuted; st++ {
		if st.String() == s {
			return st
		}
	}
	return 0
}

// ProposalViews is a list projection for readers that page through all proposals.
type ProposalViews []ProposalView

func (vs ProposalViews) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, v := range vs {
		if i > 0 {
			w.RawByte(',')
		}
		v.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}
