package branchless_test

import (
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// testRepo is an in-memory repository the tests build commits and refs in
// directly, without a worktree.
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
		t.Fatalf("failed to init repo: %v", err)
	}

	tr := &testRepo{t: t, repo: repo}

	// all test commits share one empty tree; messages and timestamps keep
	// their hashes distinct
	obj := repo.Storer.NewEncodedObject()
	if err := (&object.Tree{}).Encode(obj); err != nil {
		t.Fatalf("failed to encode tree: %v", err)
	}
	tr.tree, err = repo.Storer.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("failed to store tree: %v", err)
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
		tr.t.Fatalf("failed to encode commit %q: %v", message, err)
	}

	hash, err := tr.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		tr.t.Fatalf("failed to store commit %q: %v", message, err)
	}

	return hash
}

func (tr *testRepo) setBranch(name string, oid plumbing.Hash) {
	tr.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), oid)
	if err := tr.repo.Storer.SetReference(ref); err != nil {
		tr.t.Fatalf("failed to set branch %s: %v", name, err)
	}
}

func (tr *testRepo) checkoutBranch(name string) {
	tr.t.Helper()

	ref := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(name))
	if err := tr.repo.Storer.SetReference(ref); err != nil {
		tr.t.Fatalf("failed to point HEAD at %s: %v", name, err)
	}
}

func (tr *testRepo) detachHead(oid plumbing.Hash) {
	tr.t.Helper()

	ref := plumbing.NewHashReference(plumbing.HEAD, oid)
	if err := tr.repo.Storer.SetReference(ref); err != nil {
		tr.t.Fatalf("failed to detach HEAD at %s: %v", oid, err)
	}
}
