package ledger

import (
	"bytes"
	"sort"
)

type pending struct {
	value   []byte
	deleted bool
}

// overlay stages the writes of one atomic group on top of the committed store.
// Nothing reaches the store until flush, a rejected group just drops the overlay.
type overlay struct {
	base    Store
	pending map[string]pending
}

func newOverlay(base Store) *overlay {
	return &overlay{base: base, pending: map[string]pending{}}
}

func (o *overlay) get(key []byte) ([]byte, error) {
	if p, ok := o.pending[string(key)]; ok {
		if p.deleted {
			return nil, nil
		}
		return p.value, nil
	}
	return o.base.Get(key)
}

func (o *overlay) put(key, value []byte) {
	o.pending[string(key)] = pending{value: append([]byte(nil), value...)}
}

func (o *overlay) delete(key []byte) {
	o.pending[string(key)] = pending{deleted: true}
}

// deletePrefix tombstones every committed and staged key under prefix.
func (o *overlay) deletePrefix(prefix []byte) error {
	err := o.base.Iterate(prefix, func(key, _ []byte) bool {
		o.delete(key)
		return true
	})
	if err != nil {
		return err
	}
	for k := range o.pending {
		if bytes.HasPrefix([]byte(k), prefix) {
			o.pending[k] = pending{deleted: true}
		}
	}
	return nil
}

// batch turns staged writes into a store batch in key order so commits are deterministic.
func (o *overlay) batch() *Batch {
	keys := make([]string, 0, len(o.pending))
	for k := range o.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := &Batch{}
	for _, k := range keys {
		p := o.pending[k]
		if p.deleted {
			b.Delete([]byte(k))
			continue
		}
		b.Put([]byte(k), p.value)
	}
	return b
}
