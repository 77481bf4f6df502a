package sdk

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

// The host hands the env over as a flat json object. Reflection based decoding
// does not survive tinygo, so both directions are written out by hand.

// MarshalTinyJSON writes the env in the host wire format.
func (e Env) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"app.id":`)
	w.Uint64(e.AppID)
	w.RawString(`,"app.address":`)
	w.String(e.AppAddress.String())
	w.RawString(`,"tx.id":`)
	w.String(e.TxId)
	w.RawString(`,"block.round":`)
	w.Uint64(e.Round)
	w.RawString(`,"block.timestamp":`)
	w.Uint64(e.Timestamp)
	w.RawString(`,"msg.sender":`)
	w.String(e.Sender.String())
	w.RawString(`,"msg.on_completion":`)
	w.String(e.OnCompletion.String())
	w.RawString(`,"msg.creating":`)
	w.Bool(e.Creating)
	w.RawString(`,"msg.args":[`)
	for i, arg := range e.Args {
		if i > 0 {
			w.RawByte(',')
		}
		w.Base64Bytes(arg)
	}
	w.RawString(`],"group.index":`)
	w.Int(e.GroupIndex)
	w.RawString(`,"group.txns":[`)
	for i, txn := range e.Group {
		if i > 0 {
			w.RawByte(',')
		}
		txn.MarshalTinyJSON(w)
	}
	w.RawString(`]}`)
}

// UnmarshalTinyJSON reads the host wire format, unknown keys are skipped.
func (e *Env) UnmarshalTinyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "app.id":
			e.AppID = in.Uint64()
		case "app.address":
			e.AppAddress = Address(in.String())
		case "tx.id":
			e.TxId = in.String()
		case "block.round":
			e.Round = in.Uint64()
		case "block.timestamp":
			e.Timestamp = in.Uint64()
		case "msg.sender":
			e.Sender = Address(in.String())
		case "msg.on_completion":
			name := in.String()
			oc, ok := ParseOnCompletion(name)
			if !ok {
				in.AddError(&jlexer.LexerError{Data: name, Reason: "unknown on_completion"})
			}
			e.OnCompletion = oc
		case "msg.creating":
			e.Creating = in.Bool()
		case "msg.args":
			e.Args = e.Args[:0]
			in.Delim('[')
			for !in.IsDelim(']') {
				e.Args = append(e.Args, in.Bytes())
				in.WantComma()
			}
			in.Delim(']')
		case "group.index":
			e.GroupIndex = in.Int()
		case "group.txns":
			e.Group = e.Group[:0]
			in.Delim('[')
			for !in.IsDelim(']') {
				var txn Txn
				txn.UnmarshalTinyJSON(in)
				e.Group = append(e.Group, txn)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

func (t Txn) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"type":`)
	w.String(string(t.Type))
	w.RawString(`,"sender":`)
	w.String(t.Sender.String())
	w.RawString(`,"receiver":`)
	w.String(t.Receiver.String())
	w.RawString(`,"amount":`)
	w.Uint64(t.Amount)
	w.RawByte('}')
}

func (t *Txn) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "type":
			t.Type = TxnType(in.String())
		case "sender":
			t.Sender = Address(in.String())
		case "receiver":
			t.Receiver = Address(in.String())
		case "amount":
			t.Amount = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
