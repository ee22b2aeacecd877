package mergebase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"go.etcd.io/bbolt"

	"github.com/Spread0x/git-branchless/mergebase"
)

type testRepo struct {
	t    *testing.T
	repo *git.Repository
	tree plumbing.Hash
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), nil)
	if err != nil {
		t.Fatal(err)
	}

	tr := &testRepo{t: t, repo: repo}

	obj := repo.Storer.NewEncodedObject()
	if err := (&object.Tree{}).Encode(obj); err != nil {
		t.Fatal(err)
	}
	tr.tree, err = repo.Storer.SetEncodedObject(obj)
	if err != nil {
		t.Fatal(err)
	}

	return tr
}

func (tr *testRepo) commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	tr.t.Helper()

	tr.seq++
	sig := object.Signature{
		Name:  "test",
		Email: "test@example.com",
		When:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(tr.seq) * time.Minute),
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     tr.tree,
		ParentHashes: parents,
	}

	obj := tr.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		tr.t.Fatal(err)
	}

	hash, err := tr.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		tr.t.Fatal(err)
	}

	return hash
}

func TestGetMergeBaseOid(t *testing.T) {
	tr := newTestRepo(t)
	m := tr.commit("m")
	a := tr.commit("a", m)
	b := tr.commit("b", m)

	db, err := mergebase.New(tr.repo.Storer, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.GetMergeBaseOid(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("got %s, want %s", got, m)
	}

	// ancestor pairs resolve to the ancestor itself
	got, err = db.GetMergeBaseOid(context.Background(), a, m)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("got %s, want %s", got, m)
	}
}

func TestGetMergeBaseOid_NoCommonAncestor(t *testing.T) {
	tr := newTestRepo(t)
	a := tr.commit("a")
	b := tr.commit("b")

	db, err := mergebase.New(tr.repo.Storer, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.GetMergeBaseOid(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("got %s, want zero hash", got)
	}
}

func TestGetMergeBaseOid_PersistedAcrossInstances(t *testing.T) {
	tr := newTestRepo(t)
	m := tr.commit("m")
	a := tr.commit("a", m)
	b := tr.commit("b", m)

	path := filepath.Join(t.TempDir(), "db.bolt")
	bolt, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bolt.Close()

	db, err := mergebase.New(tr.repo.Storer, bolt)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetMergeBaseOid(context.Background(), a, b); err != nil {
		t.Fatal(err)
	}
	orphan1 := tr.commit("orphan1")
	orphan2 := tr.commit("orphan2")
	if _, err := db.GetMergeBaseOid(context.Background(), orphan1, orphan2); err != nil {
		t.Fatal(err)
	}

	// a fresh db over an empty object store must answer both queries from
	// the persisted cache, since it cannot recompute them
	fresh, err := mergebase.New(memory.NewStorage(), bolt)
	if err != nil {
		t.Fatal(err)
	}

	got, err := fresh.GetMergeBaseOid(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("got %s, want cached %s", got, m)
	}

	got, err = fresh.GetMergeBaseOid(context.Background(), orphan1, orphan2)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("got %s, want cached zero hash", got)
	}
}

func TestGetMergeBaseOid_UnorderedPair(t *testing.T) {
	tr := newTestRepo(t)
	m := tr.commit("m")
	a := tr.commit("a", m)
	b := tr.commit("b", m)

	db, err := mergebase.New(tr.repo.Storer, nil)
	if err != nil {
		t.Fatal(err)
	}

	ab, err := db.GetMergeBaseOid(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := db.GetMergeBaseOid(context.Background(), b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Errorf("pair order changed the answer: %s vs %s", ab, ba)
	}
}
