package branchless

import (
	"context"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GetMainBranchOid resolves the configured main branch to its commit. The
// main branch is a precondition of the smartlog: without it there is nothing
// to root the working set at, so absence is an error rather than an anomaly.
func GetMainBranchOid(repo *git.Repository, name string) (plumbing.Hash, error) {
	if repo == nil {
		return plumbing.ZeroHash, ErrNilRepo
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, errorf(err, "branch %q: %w", name, ErrNoMainBranch)
	}

	return ref.Hash(), nil
}

// MakeGraph constructs the smartlog graph for the repo and returns it with
// the HEAD commit.
//
// The working set is the union of the commits the event log reports active,
// every local branch tip, and HEAD. HEAD is taken from the literal HEAD
// reference resolved to its target, so a detached HEAD is tracked at its
// exact position rather than at whatever branch it last pointed to.
//
// When hideCommits is set, subtrees abandoned by the user are pruned before
// returning; pass false when the full unpruned ancestry is needed, for
// example by undo tooling.
func MakeGraph(
	ctx context.Context,
	repo *git.Repository,
	mergeBaseDb MergeBaseDb,
	replayer EventReplayer,
	mainOid plumbing.Hash,
	hideCommits bool,
) (plumbing.Hash, CommitGraph, error) {
	if repo == nil {
		return plumbing.ZeroHash, nil, ErrNilRepo
	}
	if replayer == nil {
		return plumbing.ZeroHash, nil, ErrNilReplayer
	}
	if mergeBaseDb == nil {
		return plumbing.ZeroHash, nil, ErrNilMergeBase
	}

	headRef, err := repo.Reference(plumbing.HEAD, true)
	if err != nil {
		return plumbing.ZeroHash, nil, errorf(err, "%w: %w", ErrNoHead, err)
	}
	headOid := headRef.Hash()

	commitOids := make(HashSet)
	for oid := range replayer.GetActiveOids() {
		commitOids[oid] = empty{}
	}

	branchOids := make(HashSet)
	branches, err := repo.Branches()
	if err != nil {
		return plumbing.ZeroHash, nil, errorf(err, "failed to list branches: %w", err)
	}
	if err := branches.ForEach(func(ref *plumbing.Reference) error {
		branchOids[ref.Hash()] = empty{}
		return nil
	}); err != nil {
		return plumbing.ZeroHash, nil, errorf(err, "failed to walk branches: %w", err)
	}

	for oid := range branchOids {
		commitOids[oid] = empty{}
	}
	commitOids[headOid] = empty{}

	graph, err := walkFromCommits(ctx, repo.Storer, mergeBaseDb, replayer, mainOid, commitOids)
	if err != nil {
		return plumbing.ZeroHash, nil, err
	}

	if hideCommits {
		unhideable := NewHashSet(headOid)
		for oid := range branchOids {
			unhideable[oid] = empty{}
		}
		HideCommits(graph, unhideable)
	}

	return headOid, graph, nil
}
