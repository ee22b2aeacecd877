package mergebase

import (
	"github.com/go-git/go-git/v5/plumbing"
	"go.etcd.io/bbolt"
)

const MERGE_BASE_BUCKET = "merge-bases"

// Persisted entries map the concatenated pair key to the merge-base hash.
// A single marker byte records a cached "no common ancestor", kept distinct
// from a missing key.
var noMergeBase = []byte{0}

func (d *Db) loadFromDb(key pairKey) (oid plumbing.Hash, found bool, err error) {
	if d.db == nil {
		return plumbing.ZeroHash, false, nil
	}

	err = d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(MERGE_BASE_BUCKET))
		if b == nil {
			return nil
		}

		v := b.Get(dbKey(key))
		if v == nil {
			return nil
		}

		found = true
		if len(v) == len(oid) {
			copy(oid[:], v)
		}

		return nil
	})

	return oid, found, err
}

func (d *Db) storeToDb(key pairKey, oid plumbing.Hash) error {
	if d.db == nil {
		return nil
	}

	return d.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(MERGE_BASE_BUCKET))
		if err != nil {
			return err
		}

		if oid.IsZero() {
			return b.Put(dbKey(key), noMergeBase)
		}

		return b.Put(dbKey(key), oid[:])
	})
}

func dbKey(key pairKey) []byte {
	r := make([]byte, 0, len(key[0])+len(key[1]))
	r = append(r, key[0][:]...)
	r = append(r, key[1][:]...)

	return r
}
