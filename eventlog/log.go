package eventlog

import (
	"encoding/json"

	"go.etcd.io/bbolt"

	branchless "github.com/Spread0x/git-branchless"
)

const EVENT_BUCKET = "events"

// Log is the append-only event log, stored in a bbolt bucket keyed by
// sequence number so replay sees events in the order they were recorded.
type Log struct {
	db *bbolt.DB
}

// NewLog wraps an already-open database. The caller keeps ownership of db.
func NewLog(db *bbolt.DB) *Log {
	return &Log{db: db}
}

// AddEvents appends the events to the log in one transaction.
func (l *Log) AddEvents(events ...branchless.Event) error {
	return appendToDb(
		l.db,
		[]byte(EVENT_BUCKET),
		events,
		func(ev branchless.Event) ([]byte, error) {
			r, err := eventToRecord(ev)
			if err != nil {
				return nil, err
			}
			return json.Marshal(r)
		})
}

// Events returns every recorded event, oldest first.
func (l *Log) Events() ([]branchless.Event, error) {
	var result []branchless.Event

	err := forEachInDb(
		l.db,
		[]byte(EVENT_BUCKET),
		func(data []byte, v *record) error {
			return json.Unmarshal(data, v)
		},
		func(v *record) error {
			ev, err := v.toEvent()
			if err != nil {
				return err
			}
			result = append(result, ev)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Replay replays the whole log into a fresh [Replayer].
func (l *Log) Replay() (*Replayer, error) {
	events, err := l.Events()
	if err != nil {
		return nil, err
	}

	replayer := NewReplayer()
	for _, ev := range events {
		replayer.ProcessEvent(ev)
	}

	return replayer, nil
}
