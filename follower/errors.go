package follower

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Error taxonomy. Every error returned by the engine wraps one of these,
// so callers can match with errors.Is.
var (
	ErrInsufficientArguments = errors.New("insufficient arguments")
	ErrMalformedTrigger      = errors.New("malformed trigger")
	ErrUnknownTriggerType    = errors.New("unknown trigger message type")
	ErrMalformedNoteEvent    = errors.New("malformed note event")
	ErrNoteOutOfRange        = errors.New("note out of range")
)

// invalid wraps a sentinel with context and the InvalidArgument kind
func invalid(sentinel error, format string, args ...any) error {
	return fault.Wrap(sentinel,
		fmsg.With(fmt.Sprintf(format, args...)),
		ftag.With(ftag.InvalidArgument),
	)
}
