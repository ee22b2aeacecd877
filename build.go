package branchless

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// walkFromCommits materializes the graph for the given working-set commits.
// Each commit is walked back to its merge-base with main, so the whole line
// of development since main is shown, not just the commits the event log
// happens to mention.
func walkFromCommits(
	ctx context.Context,
	s storer.EncodedObjectStorer,
	mergeBaseDb MergeBaseDb,
	replayer EventReplayer,
	mainOid plumbing.Hash,
	commitOids HashSet,
) (CommitGraph, error) {
	graph := make(CommitGraph)

	for commitOid := range commitOids {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current, err := object.GetCommit(s, commitOid)
		if err != nil {
			return nil, errorf(err, "failed to load commit %s: %w", commitOid, err)
		}

		mergeBaseOid, err := mergeBaseDb.GetMergeBaseOid(ctx, commitOid, mainOid)
		if err != nil {
			return nil, errorf(err, "failed to get merge-base of %s and %s: %w", commitOid, mainOid, err)
		}

		var pathToMergeBase []*object.Commit
		if mergeBaseOid.IsZero() {
			// No merge-base with main, for example a rewritten initial
			// commit. Keep it as a standalone component.
			pathToMergeBase = []*object.Commit{current}
		} else {
			pathToMergeBase, err = FindPathToMergeBase(ctx, s, commitOid, mergeBaseOid, mergeBaseOid)
			if err != nil {
				return nil, err
			}
			if pathToMergeBase == nil {
				// Every working-set commit is expected to be rooted in main.
				logger.Warn("no path to merge-base", "commit", commitOid, "merge-base", mergeBaseOid)
				continue
			}
		}

		for _, commit := range pathToMergeBase {
			if _, found := graph[commit.Hash]; found {
				// This commit and all of its ancestors are materialized
				// already.
				break
			}

			isVisible := replayer.GetCommitVisibility(commit.Hash) != VisibilityHidden

			graph[commit.Hash] = &Node{
				Commit:    commit,
				Parent:    plumbing.ZeroHash,
				Children:  make(HashSet),
				IsMain:    !mergeBaseOid.IsZero() && commit.Hash == mergeBaseOid,
				IsVisible: isVisible,
				Event:     replayer.GetCommitLatestEvent(commit.Hash),
			}
		}

		if !mergeBaseOid.IsZero() {
			if _, found := graph[mergeBaseOid]; !found {
				logger.Warn("merge-base missing from graph", "merge-base", mergeBaseOid, "commit", commitOid)
			}
		}
	}

	linkGraph(graph)

	return graph, nil
}

// linkGraph connects every non-main node to whichever of its real parents is
// also in the graph. Main nodes stay unlinked: the main branch is an
// immutable line, not part of the working-set tree.
func linkGraph(graph CommitGraph) {
	for oid, node := range graph {
		if node.IsMain {
			continue
		}

		for _, parentOid := range node.Commit.ParentHashes {
			if parent, found := graph[parentOid]; found {
				node.Parent = parentOid
				parent.Children[oid] = empty{}
			}
		}
	}
}
