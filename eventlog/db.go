package eventlog

import (
	"encoding/binary"

	"go.etcd.io/bbolt"
)

// appendToDb appends the values to the bucket under fresh sequence-number
// keys, all in one transaction.
func appendToDb[T any](
	db *bbolt.DB, bucket []byte, vs []T,
	marshal func(v T) ([]byte, error),
) error {
	if db == nil {
		return ErrNilDB
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}

		for _, v := range vs {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}

			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)

			data, err := marshal(v)
			if err != nil {
				return err
			}
			if err := b.Put(key, data); err != nil {
				return err
			}
		}

		return nil
	})
}

// forEachInDb calls fn for every value in the bucket in key order. A missing
// bucket is an empty bucket.
func forEachInDb[T any](
	db *bbolt.DB, bucket []byte,
	unmarshal func(data []byte, v *T) error,
	fn func(v *T) error,
) error {
	if db == nil {
		return ErrNilDB
	}

	return db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(_, data []byte) error {
			v := new(T)
			if err := unmarshal(data, v); err != nil {
				return err
			}
			return fn(v)
		})
	})
}
