package branchless

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// FindPathToMergeBase finds a shortest ancestry path from start to target,
// start first and target last, walking parent links breadth first.
//
// mergeBase is the already-computed merge-base of the two commits and bounds
// the search: a frontier that reaches it without reaching target cannot get
// there through more ancestors, so that branch is abandoned. Without the
// bound, a merge commit whose wrong parent is followed can drag the search
// arbitrarily deep into unrelated history. Pass the zero hash when the
// commits have no merge-base.
//
// Returns a nil path and nil error when no path exists, for example when the
// caller swapped the arguments and target is a descendant of start.
func FindPathToMergeBase(
	ctx context.Context,
	s storer.EncodedObjectStorer,
	start plumbing.Hash,
	target plumbing.Hash,
	mergeBase plumbing.Hash,
) ([]*object.Commit, error) {
	first, err := object.GetCommit(s, start)
	if err != nil {
		return nil, errorf(err, "failed to load commit %s: %w", start, err)
	}

	queue := [][]*object.Commit{{first}}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := queue[0]
		queue = queue[1:]

		tip := path[len(path)-1]
		if tip.Hash == target {
			return path, nil
		}
		if tip.Hash == mergeBase {
			// Hit the common ancestor without finding target: no amount of
			// further ancestors can reach it from here.
			continue
		}

		for _, parentHash := range tip.ParentHashes {
			parent, err := object.GetCommit(s, parentHash)
			if err != nil {
				return nil, errorf(err, "failed to load parent %s of %s: %w", parentHash, tip.Hash, err)
			}

			next := make([]*object.Commit, len(path), len(path)+1)
			copy(next, path)
			queue = append(queue, append(next, parent))
		}
	}

	return nil, nil
}
