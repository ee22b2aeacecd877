// mergebase computes and caches merge-bases. The underlying object-graph
// walk is expensive, so results, including negative ones, are memoized by
// unordered commit pair in memory and optionally persisted in bbolt so
// repeated smartlog runs do not recompute them.
package mergebase

import (
	"bytes"
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"go.etcd.io/bbolt"

	branchless "github.com/Spread0x/git-branchless"
)

var (
	ErrNilStorer = errors.New("nil object storer")
)

// cacheSize bounds the in-memory memoization. Entries are tiny; this is
// generous for any realistic working set.
const cacheSize = 1 << 14

// pairKey identifies an unordered commit pair, smaller hash first.
type pairKey [2]plumbing.Hash

func newPairKey(lhs, rhs plumbing.Hash) pairKey {
	if bytes.Compare(lhs[:], rhs[:]) > 0 {
		lhs, rhs = rhs, lhs
	}

	return pairKey{lhs, rhs}
}

// Db answers merge-base queries for one object store. The zero hash stands
// for "no common ancestor", both in results and in the caches.
type Db struct {
	s     storer.EncodedObjectStorer
	cache *lru.Cache[pairKey, plumbing.Hash]
	db    *bbolt.DB
}

var _ branchless.MergeBaseDb = (*Db)(nil)

// New creates a merge-base db over the object store. db may be nil, in which
// case results are memoized in memory only.
func New(s storer.EncodedObjectStorer, db *bbolt.DB) (*Db, error) {
	if s == nil {
		return nil, ErrNilStorer
	}

	cache, err := lru.New[pairKey, plumbing.Hash](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Db{s: s, cache: cache, db: db}, nil
}

// GetMergeBaseOid returns the nearest common ancestor of lhs and rhs, or the
// zero hash when they share none.
func (d *Db) GetMergeBaseOid(ctx context.Context, lhs plumbing.Hash, rhs plumbing.Hash) (plumbing.Hash, error) {
	select {
	case <-ctx.Done():
		return plumbing.ZeroHash, ctx.Err()
	default:
	}

	key := newPairKey(lhs, rhs)

	if oid, found := d.cache.Get(key); found {
		return oid, nil
	}

	if oid, found, err := d.loadFromDb(key); err != nil {
		return plumbing.ZeroHash, err
	} else if found {
		d.cache.Add(key, oid)
		return oid, nil
	}

	oid, err := d.compute(lhs, rhs)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	d.cache.Add(key, oid)
	if err := d.storeToDb(key, oid); err != nil {
		return plumbing.ZeroHash, err
	}

	return oid, nil
}

func (d *Db) compute(lhs, rhs plumbing.Hash) (plumbing.Hash, error) {
	lhsCommit, err := object.GetCommit(d.s, lhs)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	rhsCommit, err := object.GetCommit(d.s, rhs)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	bases, err := lhsCommit.MergeBase(rhsCommit)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if len(bases) == 0 {
		return plumbing.ZeroHash, nil
	}

	// Criss-cross histories can yield several merge-bases; any one of them
	// is a valid root for the working-set walk.
	return bases[0].Hash, nil
}
