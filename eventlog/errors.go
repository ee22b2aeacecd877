// errors

package eventlog

import "errors"

var (
	ErrNilDB        = errors.New("nil database")
	ErrNilEvent     = errors.New("nil event")
	ErrUnknownKind  = errors.New("unknown event kind")
	ErrUnknownEvent = errors.New("event type not storable")
)
