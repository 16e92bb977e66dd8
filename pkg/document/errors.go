package document

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDanglingAddon       = errors.New("addon block without a preceding code cell")
	ErrUnresolvedReference = errors.New("referenced cell not found")
	ErrUnknownBlockType    = errors.New("unknown block type")
)

// ParseError reports a structural problem found while parsing.
// The whole parse fails; no cells are returned alongside it.
type ParseError struct {
	// Line is the 1-based line of the fence opener.
	Line int
	// ID is the referenced cell id, if any.
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("line %d: %s: id=%q", e.Line, e.Err, e.ID)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a short name for the error class, used in API responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDanglingAddon):
		return "DanglingAddon"
	case errors.Is(err, ErrUnresolvedReference):
		return "UnresolvedReference"
	case errors.Is(err, ErrUnknownBlockType):
		return "UnknownBlockType"
	default:
		return ""
	}
}
