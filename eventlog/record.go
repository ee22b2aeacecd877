package eventlog

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	branchless "github.com/Spread0x/git-branchless"
)

// record is the stored form of an event. One flat struct covers every kind;
// unused fields are omitted from the encoding.
type record struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	CommitOid    string `json:"commit_oid,omitempty"`
	OldCommitOid string `json:"old_commit_oid,omitempty"`
	NewCommitOid string `json:"new_commit_oid,omitempty"`

	RefName string `json:"ref_name,omitempty"`
	OldRef  string `json:"old_ref,omitempty"`
	NewRef  string `json:"new_ref,omitempty"`
	Message string `json:"message,omitempty"`
}

func eventToRecord(ev branchless.Event) (*record, error) {
	switch e := ev.(type) {
	case CommitEvent:
		return &record{Kind: KindCommit, Timestamp: e.Timestamp, CommitOid: e.CommitOid.String()}, nil
	case HideEvent:
		return &record{Kind: KindHide, Timestamp: e.Timestamp, CommitOid: e.CommitOid.String()}, nil
	case UnhideEvent:
		return &record{Kind: KindUnhide, Timestamp: e.Timestamp, CommitOid: e.CommitOid.String()}, nil
	case RewriteEvent:
		return &record{
			Kind:         KindRewrite,
			Timestamp:    e.Timestamp,
			OldCommitOid: e.OldCommitOid.String(),
			NewCommitOid: e.NewCommitOid.String(),
		}, nil
	case RefUpdateEvent:
		return &record{
			Kind:      KindRefUpdate,
			Timestamp: e.Timestamp,
			RefName:   e.RefName,
			OldRef:    e.OldRef.String(),
			NewRef:    e.NewRef.String(),
			Message:   e.Message,
		}, nil
	case nil:
		return nil, ErrNilEvent
	default:
		return nil, fmt.Errorf("%T: %w", ev, ErrUnknownEvent)
	}
}

func (r *record) toEvent() (branchless.Event, error) {
	switch r.Kind {
	case KindCommit:
		oid, err := branchless.DecodeHashHex(r.CommitOid)
		if err != nil {
			return nil, err
		}
		return CommitEvent{Timestamp: r.Timestamp, CommitOid: oid}, nil
	case KindHide:
		oid, err := branchless.DecodeHashHex(r.CommitOid)
		if err != nil {
			return nil, err
		}
		return HideEvent{Timestamp: r.Timestamp, CommitOid: oid}, nil
	case KindUnhide:
		oid, err := branchless.DecodeHashHex(r.CommitOid)
		if err != nil {
			return nil, err
		}
		return UnhideEvent{Timestamp: r.Timestamp, CommitOid: oid}, nil
	case KindRewrite:
		oldOid, err := branchless.DecodeHashHex(r.OldCommitOid)
		if err != nil {
			return nil, err
		}
		newOid, err := branchless.DecodeHashHex(r.NewCommitOid)
		if err != nil {
			return nil, err
		}
		return RewriteEvent{Timestamp: r.Timestamp, OldCommitOid: oldOid, NewCommitOid: newOid}, nil
	case KindRefUpdate:
		oldRef := plumbing.ZeroHash
		newRef := plumbing.ZeroHash
		var err error
		if r.OldRef != "" {
			if oldRef, err = branchless.DecodeHashHex(r.OldRef); err != nil {
				return nil, err
			}
		}
		if r.NewRef != "" {
			if newRef, err = branchless.DecodeHashHex(r.NewRef); err != nil {
				return nil, err
			}
		}
		return RefUpdateEvent{
			Timestamp: r.Timestamp,
			RefName:   r.RefName,
			OldRef:    oldRef,
			NewRef:    newRef,
			Message:   r.Message,
		}, nil
	default:
		return nil, fmt.Errorf("%q: %w", r.Kind, ErrUnknownKind)
	}
}
