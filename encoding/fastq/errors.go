package fastq

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Kind classifies an ingestion error per the taxonomy below. It exists
// alongside grailbio/base/errors (used for wrapping/context throughout this
// package) because that package's own Kind enum is closed over generic
// storage/IO failures and has no notion of FASTQ-specific shape or record
// errors.
type Kind int

const (
	// Configuration names a rejected flag combination, unknown platform, or
	// an inconsistent read-count across readLens/readTypes/readLabels.
	Configuration Kind = iota
	// Shape names a defline without a recognizable '@'/'>' lead byte, an
	// unrecognized '>'-led file that is neither a seq nor a qual file,
	// incompatible paired file types, or a >20000-line inter-defline gap.
	Shape
	// Record names a resyncable defline parse failure or a repaired
	// seq/qual length mismatch.
	Record
	// FatalStream names a failure to resync within the resync window, a
	// numeric quality magnitude over 100, or a seq/qual defline name
	// mismatch in split mode.
	FatalStream
	// Exceeded names a run whose Record error count passed maxErrorCount.
	Exceeded
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration error"
	case Shape:
		return "file shape error"
	case Record:
		return "record error"
	case FatalStream:
		return "fatal stream error"
	case Exceeded:
		return "error count exceeded"
	default:
		return "unknown error"
	}
}

// Error is an ingestion error tagged with a Kind, following the style of
// grailbio/base/errors.Error (a Kind field plus a wrapped cause) but scoped
// to this package's own taxonomy.
type Error struct {
	Kind Kind
	Path string // file path the error pertains to, if any.
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// errorf builds a Kind-tagged Error, wrapping the formatted message through
// grailbio/base/errors.Errorf for consistent context formatting with the
// rest of the teacher's code.
func errorf(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Err: errors.Errorf(format, args...)}
}

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
