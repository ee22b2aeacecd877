package branchless

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Visibility is the recorded visibility state of a commit in the event log.
type Visibility int

const (
	// VisibilityUnknown means the log holds no record for the commit.
	VisibilityUnknown Visibility = iota
	VisibilityVisible
	VisibilityHidden
)

// Event is one activity-log record affecting a commit. The concrete types
// live in the eventlog package; the graph only carries the latest one per
// node for display purposes.
type Event interface {
	// EventKind is a short name of the action, such as "commit" or "hide".
	EventKind() string
	// EventTime is when the action was recorded.
	EventTime() time.Time
}

// EventReplayer answers visibility and activity queries derived from the
// event log.
type EventReplayer interface {
	// GetActiveOids returns the commits with at least one recorded event.
	GetActiveOids() HashSet
	// GetCommitVisibility returns the recorded visibility of the commit.
	GetCommitVisibility(oid plumbing.Hash) Visibility
	// GetCommitLatestEvent returns the most recent event affecting the
	// commit, or nil if there is none.
	GetCommitLatestEvent(oid plumbing.Hash) Event
}

// MergeBaseDb computes the nearest common ancestor of two commits, caching
// results keyed by the unordered pair. A zero hash with nil error means the
// commits share no ancestor.
type MergeBaseDb interface {
	GetMergeBaseOid(ctx context.Context, lhs plumbing.Hash, rhs plumbing.Hash) (plumbing.Hash, error)
}

// Node is one commit in the smartlog commit graph.
type Node struct {
	// Commit is the underlying commit object, owned by the object store.
	Commit *object.Commit

	// Parent is the parent node in the smartlog graph, zero when this node
	// roots a component. This differs from Commit.ParentHashes: most of the
	// real ancestry is not part of the graph.
	Parent plumbing.Hash

	// Children are the child nodes in the smartlog graph.
	Children HashSet

	// IsMain marks a commit on the main branch. Such commits are immutable
	// history: they anchor components and are mostly exempt from hiding.
	IsMain bool

	// IsVisible is false only when the event log explicitly hid the commit.
	IsVisible bool

	// Event is the latest event to affect this commit, nil when the commit
	// is in the graph only because a reference points to it.
	Event Event
}

// CommitGraph is the smartlog graph, keyed by commit hash. All node
// relationships are expressed as hashes into this map.
type CommitGraph = map[plumbing.Hash]*Node

// CheckGraph verifies the structural invariants of a built graph: parent and
// children links resolve to graph keys and agree with each other, and parent
// chains terminate. A failure here is an internal fault, not user error.
func CheckGraph(graph CommitGraph) error {
	for oid, node := range graph {
		if !node.Parent.IsZero() {
			parent, found := graph[node.Parent]
			if !found {
				return errorf(ErrBrokenParent, "node %s parent %s: %w", oid, node.Parent, ErrBrokenParent)
			}
			if _, linked := parent.Children[oid]; !linked {
				return errorf(ErrBrokenChild, "node %s missing from children of %s: %w", oid, node.Parent, ErrBrokenChild)
			}
		}
		for child := range node.Children {
			if _, found := graph[child]; !found {
				return errorf(ErrBrokenChild, "node %s child %s: %w", oid, child, ErrBrokenChild)
			}
		}
	}

	// parent chains must terminate within len(graph) steps
	for oid, node := range graph {
		steps := 0
		for !node.Parent.IsZero() {
			node = graph[node.Parent]
			steps++
			if steps > len(graph) {
				return errorf(ErrBrokenParent, "cycle through %s: %w", oid, ErrBrokenParent)
			}
		}
	}

	return nil
}
