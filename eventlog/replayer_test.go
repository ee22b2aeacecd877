package eventlog_test

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	branchless "github.com/Spread0x/git-branchless"
	"github.com/Spread0x/git-branchless/eventlog"
)

func oid(b byte) plumbing.Hash {
	var h plumbing.Hash
	h[0] = b

	return h
}

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return t0.Add(time.Duration(minutes) * time.Minute) }

func TestReplayer_Visibility(t *testing.T) {
	a, b := oid(1), oid(2)

	r := eventlog.NewReplayer()
	r.ProcessEvent(eventlog.CommitEvent{Timestamp: at(0), CommitOid: a})
	r.ProcessEvent(eventlog.HideEvent{Timestamp: at(1), CommitOid: a})

	if got := r.GetCommitVisibility(a); got != branchless.VisibilityHidden {
		t.Errorf("a: got %v, want hidden", got)
	}
	if got := r.GetCommitVisibility(b); got != branchless.VisibilityUnknown {
		t.Errorf("b: got %v, want unknown", got)
	}

	r.ProcessEvent(eventlog.UnhideEvent{Timestamp: at(2), CommitOid: a})
	if got := r.GetCommitVisibility(a); got != branchless.VisibilityVisible {
		t.Errorf("a after unhide: got %v, want visible", got)
	}
}

func TestReplayer_Rewrite(t *testing.T) {
	old, new_ := oid(1), oid(2)

	r := eventlog.NewReplayer()
	r.ProcessEvent(eventlog.CommitEvent{Timestamp: at(0), CommitOid: old})
	r.ProcessEvent(eventlog.RewriteEvent{Timestamp: at(1), OldCommitOid: old, NewCommitOid: new_})

	if got := r.GetCommitVisibility(old); got != branchless.VisibilityHidden {
		t.Errorf("old: got %v, want hidden", got)
	}
	if got := r.GetCommitVisibility(new_); got != branchless.VisibilityVisible {
		t.Errorf("new: got %v, want visible", got)
	}

	active := r.GetActiveOids()
	for _, want := range []plumbing.Hash{old, new_} {
		if _, found := active[want]; !found {
			t.Errorf("%s missing from active set", want)
		}
	}
}

func TestReplayer_RefUpdateNotActivity(t *testing.T) {
	a := oid(1)

	r := eventlog.NewReplayer()
	r.ProcessEvent(eventlog.RefUpdateEvent{
		Timestamp: at(0),
		RefName:   "HEAD",
		NewRef:    a,
		Message:   "checkout",
	})

	if got := len(r.GetActiveOids()); got != 0 {
		t.Errorf("ref update made %d commits active", got)
	}
	if r.GetCommitLatestEvent(a) != nil {
		t.Error("ref update recorded as commit activity")
	}
}

func TestReplayer_LatestEvent(t *testing.T) {
	a := oid(1)

	r := eventlog.NewReplayer()
	r.ProcessEvent(eventlog.CommitEvent{Timestamp: at(0), CommitOid: a})
	r.ProcessEvent(eventlog.HideEvent{Timestamp: at(5), CommitOid: a})

	ev := r.GetCommitLatestEvent(a)
	if ev == nil {
		t.Fatal("no latest event")
	}
	if ev.EventKind() != eventlog.KindHide {
		t.Errorf("kind: got %s, want %s", ev.EventKind(), eventlog.KindHide)
	}
	if !ev.EventTime().Equal(at(5)) {
		t.Errorf("time: got %v, want %v", ev.EventTime(), at(5))
	}
}
