package eventlog

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

const (
	KindCommit    = "commit"
	KindHide      = "hide"
	KindUnhide    = "unhide"
	KindRewrite   = "rewrite"
	KindRefUpdate = "ref-move"
)

// CommitEvent records that the user created a commit.
type CommitEvent struct {
	Timestamp time.Time
	CommitOid plumbing.Hash
}

func (e CommitEvent) EventKind() string    { return KindCommit }
func (e CommitEvent) EventTime() time.Time { return e.Timestamp }

// HideEvent records that the user explicitly hid a commit.
type HideEvent struct {
	Timestamp time.Time
	CommitOid plumbing.Hash
}

func (e HideEvent) EventKind() string    { return KindHide }
func (e HideEvent) EventTime() time.Time { return e.Timestamp }

// UnhideEvent records that the user explicitly unhid a commit.
type UnhideEvent struct {
	Timestamp time.Time
	CommitOid plumbing.Hash
}

func (e UnhideEvent) EventKind() string    { return KindUnhide }
func (e UnhideEvent) EventTime() time.Time { return e.Timestamp }

// RewriteEvent records that a commit was rewritten, for example by an amend
// or a rebase. The old version is abandoned in favor of the new one.
type RewriteEvent struct {
	Timestamp    time.Time
	OldCommitOid plumbing.Hash
	NewCommitOid plumbing.Hash
}

func (e RewriteEvent) EventKind() string    { return KindRewrite }
func (e RewriteEvent) EventTime() time.Time { return e.Timestamp }

// RefUpdateEvent records a reference moving, such as a checkout or a branch
// update. It names refs rather than commits and does not affect visibility.
type RefUpdateEvent struct {
	Timestamp time.Time
	RefName   string
	OldRef    plumbing.Hash
	NewRef    plumbing.Hash
	Message   string
}

func (e RefUpdateEvent) EventKind() string    { return KindRefUpdate }
func (e RefUpdateEvent) EventTime() time.Time { return e.Timestamp }
