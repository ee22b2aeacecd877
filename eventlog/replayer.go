package eventlog

import (
	"github.com/go-git/go-git/v5/plumbing"

	branchless "github.com/Spread0x/git-branchless"
)

// Replayer consumes events in recorded order and answers the activity and
// visibility queries of [branchless.EventReplayer].
//
// Ref-update events name references rather than commits, so they are
// accepted but do not mark any commit active.
type Replayer struct {
	commitHistory map[plumbing.Hash][]branchless.Event
}

var _ branchless.EventReplayer = (*Replayer)(nil)

func NewReplayer() *Replayer {
	return &Replayer{
		commitHistory: make(map[plumbing.Hash][]branchless.Event),
	}
}

// ProcessEvent folds one event into the replayer state. Events must be
// supplied oldest first.
func (r *Replayer) ProcessEvent(ev branchless.Event) {
	switch e := ev.(type) {
	case CommitEvent:
		r.record(e.CommitOid, ev)
	case HideEvent:
		r.record(e.CommitOid, ev)
	case UnhideEvent:
		r.record(e.CommitOid, ev)
	case RewriteEvent:
		r.record(e.OldCommitOid, ev)
		r.record(e.NewCommitOid, ev)
	case RefUpdateEvent:
		// tracked in the log for undo purposes, not a per-commit activity
	}
}

func (r *Replayer) record(oid plumbing.Hash, ev branchless.Event) {
	r.commitHistory[oid] = append(r.commitHistory[oid], ev)
}

// GetActiveOids returns every commit with at least one recorded event.
func (r *Replayer) GetActiveOids() branchless.HashSet {
	result := make(branchless.HashSet, len(r.commitHistory))
	for oid := range r.commitHistory {
		result[oid] = struct{}{}
	}

	return result
}

// GetCommitVisibility derives visibility from the latest event affecting the
// commit: commits and unhides make it visible, hides make it hidden, and a
// rewrite hides the old version while making the new one visible.
func (r *Replayer) GetCommitVisibility(oid plumbing.Hash) branchless.Visibility {
	history := r.commitHistory[oid]
	if len(history) == 0 {
		return branchless.VisibilityUnknown
	}

	switch e := history[len(history)-1].(type) {
	case CommitEvent, UnhideEvent:
		return branchless.VisibilityVisible
	case HideEvent:
		return branchless.VisibilityHidden
	case RewriteEvent:
		if e.NewCommitOid == oid {
			return branchless.VisibilityVisible
		}
		return branchless.VisibilityHidden
	default:
		return branchless.VisibilityUnknown
	}
}

// GetCommitLatestEvent returns the most recent event affecting the commit,
// or nil when there is none.
func (r *Replayer) GetCommitLatestEvent(oid plumbing.Hash) branchless.Event {
	history := r.commitHistory[oid]
	if len(history) == 0 {
		return nil
	}

	return history[len(history)-1]
}
