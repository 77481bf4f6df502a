package explorer

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

func (m Member) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"address":`)
	w.String(m.Address)
	w.RawString(`,"is_member":`)
	w.Bool(m.IsMember)
	w.RawString(`,"voting_power":`)
	w.Uint64(m.VotingPower)
	w.RawString(`,"join_time":`)
	w.Uint64(m.JoinTime)
	if m.Tier != "" {
		w.RawString(`,"tier":`)
		w.String(m.Tier)
	}
	w.RawByte('}')
}

func (m *Member) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "address":
			m.Address = in.String()
		case "is_member":
			m.IsMember = in.Bool()
		case "voting_power":
			m.VotingPower = in.Uint64()
		case "join_time":
			m.JoinTime = in.Uint64()
		case "tier":
			m.Tier = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

func (t Treasury) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"balance":`)
	w.Uint64(t.Balance)
	w.RawString(`,"held":`)
	w.Uint64(t.Held)
	w.RawString(`,"round":`)
	w.Uint64(t.Round)
	w.RawByte('}')
}

func (t *Treasury) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "balance":
			t.Balance = in.Uint64()
		case "held":
			t.Held = in.Uint64()
		case "round":
			t.Round = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
