package ledger

import (
	"fmt"

	"github.com/pkg/errors"

	"okinoko_council/sdk"
)

// callHost serves the sdk for exactly one application call. Everything it writes
// lands in the group's overlay.
type callHost struct {
	ov       *overlay
	env      sdk.Env
	logs     []string
	payments []Payment
}

var _ sdk.Host = (*callHost)(nil)

func (h *callHost) Env() sdk.Env {
	return h.env
}

func (h *callHost) Log(msg string) {
	h.logs = append(h.logs, msg)
}

func (h *callHost) GetObject(key string) *string {
	return h.read(globalKey(key))
}

func (h *callHost) SetObject(key, value string) {
	h.ov.put(globalKey(key), []byte(value))
}

func (h *callHost) DeleteObject(key string) {
	h.ov.delete(globalKey(key))
}

func (h *callHost) GetLocal(account sdk.Address, key string) *string {
	return h.read(localKey(account, key))
}

func (h *callHost) SetLocal(account sdk.Address, key, value string) {
	if !account.IsValid() {
		sdk.Abort(fmt.Sprintf("ledger: invalid account %q", account))
	}
	h.ov.put(localKey(account, key), []byte(value))
}

func (h *callHost) DeleteLocal(account sdk.Address, key string) {
	h.ov.delete(localKey(account, key))
}

// Transfer is an inner payment out of the application account.
func (h *callHost) Transfer(to sdk.Address, amount uint64) {
	if !to.IsValid() {
		sdk.Abort(fmt.Sprintf("ledger: invalid receiver %q", to))
	}
	p := Payment{From: h.env.AppAddress, To: to, Amount: amount}
	if err := applyPayment(h.ov, p); err != nil {
		sdk.Abort("ledger: " + err.Error())
	}
	h.payments = append(h.payments, p)
}

// read turns store failures into aborts, the program has no error channel.
func (h *callHost) read(key []byte) *string {
	v, err := h.ov.get(key)
	if err != nil {
		sdk.Abort("ledger: read failed: " + err.Error())
	}
	if v == nil {
		return nil
	}
	s := string(v)
	return &s
}

// applyPayment moves funds between two balances inside the overlay.
func applyPayment(ov *overlay, p Payment) error {
	if p.Amount == 0 {
		return nil
	}
	fromRaw, err := ov.get(balanceKey(p.From))
	if err != nil {
		return err
	}
	from := decodeU64(fromRaw)
	if from < p.Amount {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %d, needs %d", p.From, from, p.Amount)
	}
	ov.put(balanceKey(p.From), encodeU64(from-p.Amount))

	toRaw, err := ov.get(balanceKey(p.To))
	if err != nil {
		return err
	}
	to := decodeU64(toRaw)
	if to > ^uint64(0)-p.Amount {
		return errors.Errorf("balance overflow for %s", p.To)
	}
	ov.put(balanceKey(p.To), encodeU64(to+p.Amount))
	return nil
}
