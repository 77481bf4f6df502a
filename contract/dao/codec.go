package dao

import (
	"bytes"
	"encoding/binary"
	"errors"
)

type binWriter struct {
	buf bytes.Buffer
}

func newWriter() *binWriter { return &binWriter{} }

func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a Address) {
	w.writeString(addressString(a))
}

// EncodeGlobalConfig serializes the singleton config record.
func EncodeGlobalConfig(cfg *GlobalConfig) []byte {
	w := newWriter()
	w.writeUint64(cfg.ProposalCount)
	w.writeUint64(cfg.Treasury)
	w.writeUint64(cfg.MinVotingPower)
	w.writeUint64(cfg.VotingPeriod)
	return w.bytes()
}

// EncodeAccount serializes a member record for the local partition.
func EncodeAccount(acc *Account) []byte {
	w := newWriter()
	w.writeUint64(acc.VotingPower)
	w.writeUint64(acc.JoinTime)
	return w.bytes()
}

// EncodeProposal serializes a proposal.
func EncodeProposal(prpsl *Proposal) []byte {
	w := newWriter()
	w.writeUint64(prpsl.ID)
	w.writeAddress(prpsl.Creator)
	w.writeString(prpsl.Title)
	w.writeString(prpsl.Description)
	w.buf.WriteByte(byte(prpsl.Type))
	w.writeUint64(prpsl.Amount)
	w.writeAddress(prpsl.Recipient)
	w.writeUint64(prpsl.CreatedAt)
	w.writeUint64(prpsl.Deadline)
	w.writeBool(prpsl.Executed)
	return w.bytes()
}

func EncodeTally(t *Tally) []byte {
	w := newWriter()
	w.writeUint64(t.Yes)
	w.writeUint64(t.No)
	w.writeUint64(t.Abstain)
	return w.bytes()
}

func EncodeVoteReceipt(r *VoteReceipt) []byte {
	w := newWriter()
	w.buf.WriteByte(byte(r.Choice))
	w.writeVarUint(r.Weight)
	return w.bytes()
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

var errUnexpectedEOF = errors.New("unexpected EOF")

type binReader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(len(r.data)-r.pos) {
		return "", errUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *binReader) readAddress() (Address, error) {
	s, err := r.readString()
	if err != nil {
		return newAddress(""), err
	}
	return newAddress(s), nil
}

// finish reports trailing garbage so a truncated or mixed-up record never decodes silently.
func (r *binReader) finish() error {
	if r.pos != len(r.data) {
		return errors.New("trailing bytes in record")
	}
	return nil
}

func DecodeGlobalConfig(data []byte) (*GlobalConfig, error) {
	r := newReader(data)
	cfg := &GlobalConfig{}
	var err error
	if cfg.ProposalCount, err = r.readUint64(); err != nil {
		return nil, err
	}
	if cfg.Treasury, err = r.readUint64(); err != nil {
		return nil, err
	}
	if cfg.MinVotingPower, err = r.readUint64(); err != nil {
		return nil, err
	}
	if cfg.VotingPeriod, err = r.readUint64(); err != nil {
		return nil, err
	}
	return cfg, r.finish()
}

func DecodeAccount(data []byte) (*Account, error) {
	r := newReader(data)
	acc := &Account{}
	var err error
	if acc.VotingPower, err = r.readUint64(); err != nil {
		return nil, err
	}
	if acc.JoinTime, err = r.readUint64(); err != nil {
		return nil, err
	}
	return acc, r.finish()
}

// DecodeProposal reverses EncodeProposal.
func DecodeProposal(data []byte) (*Proposal, error) {
	r := newReader(data)
	prpsl := &Proposal{}
	var err error
	if prpsl.ID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if prpsl.Creator, err = r.readAddress(); err != nil {
		return nil, err
	}
	if prpsl.Title, err = r.readString(); err != nil {
		return nil, err
	}
	if prpsl.Description, err = r.readString(); err != nil {
		return nil, err
	}
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	prpsl.Type = ProposalType(b)
	if prpsl.Amount, err = r.readUint64(); err != nil {
		return nil, err
	}
	if prpsl.Recipient, err = r.readAddress(); err != nil {
		return nil, err
	}
	if prpsl.CreatedAt, err = r.readUint64(); err != nil {
		return nil, err
	}
	if prpsl.Deadline, err = r.readUint64(); err != nil {
		return nil, err
	}
	if prpsl.Executed, err = r.readBool(); err != nil {
		return nil, err
	}
	return prpsl, r.finish()
}

func DecodeTally(data []byte) (*Tally, error) {
	r := newReader(data)
	t := &Tally{}
	var err error
	if t.Yes, err = r.readUint64(); err != nil {
		return nil, err
	}
	if t.No, err = r.readUint64(); err != nil {
		return nil, err
	}
	if t.Abstain, err = r.readUint64(); err != nil {
		return nil, err
	}
	return t, r.finish()
}

func DecodeVoteReceipt(data []byte) (*VoteReceipt, error) {
	r := newReader(data)
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	rec := &VoteReceipt{Choice: Choice(b)}
	if rec.Weight, err = r.readVarUint(); err != nil {
		return nil, err
	}
	return rec, r.finish()
}
