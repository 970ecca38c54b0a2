package errs

import (
	"errors"
	"fmt"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrRouteNotFound = errors.New("route not found")
	ErrEmptyBody     = errors.New("request body is empty")
	ErrNullBody      = errors.New("request body is null")
)

// Kind tags where an ingest request failed. Callers outside the service see
// a single error shape; the kind is kept for logging and tests.
type Kind int

const (
	KindUnknown Kind = iota
	KindParse
	KindLookup
	KindAppend
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindLookup:
		return "lookup"
	case KindAppend:
		return "append"
	default:
		return "unknown"
	}
}

type IngestError struct {
	Kind Kind
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func Parse(err error) error {
	return &IngestError{Kind: KindParse, Err: err}
}

func Lookup(err error) error {
	return &IngestError{Kind: KindLookup, Err: err}
}

func Append(err error) error {
	return &IngestError{Kind: KindAppend, Err: err}
}

// KindOf returns the kind of the first IngestError in err's chain.
func KindOf(err error) Kind {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}
