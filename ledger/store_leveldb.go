package ledger

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore persists ledger state on disk so cli runs pick up where they left off.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a store in dir.
func OpenLevelDB(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb at %s", dir)
	}
	return &LevelDBStore{db: db}, nil
}

// Get returns nil, nil for missing keys.
func (s *LevelDBStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "leveldb get")
	}
	return v, nil
}

// Write commits the batch with a synced leveldb batch write.
func (s *LevelDBStore) Write(b *Batch) error {
	lb := new(leveldb.Batch)
	for _, op := range b.ops {
		if op.delete {
			lb.Delete(op.key)
			continue
		}
		lb.Put(op.key, op.value)
	}
	if err := s.db.Write(lb, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "leveldb write")
	}
	return nil
}

func (s *LevelDBStore) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		k := append([]byte(nil), it.Key()...)
		v := append([]byte(nil), it.Value()...)
		if !fn(k, v) {
			break
		}
	}
	return errors.Wrap(it.Error(), "leveldb iterate")
}

func (s *LevelDBStore) Close() error {
	return errors.Wrap(s.db.Close(), "close leveldb")
}
