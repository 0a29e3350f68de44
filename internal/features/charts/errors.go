package charts

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a render failure.
type ErrorKind int

const (
	IOFailure ErrorKind = iota + 1
	EmptySeries
	BackendFailure
)

func (k ErrorKind) String() string {
	switch k {
	case IOFailure:
		return "io failure"
	case EmptySeries:
		return "empty series"
	case BackendFailure:
		return "backend failure"
	default:
		return "unknown"
	}
}

var (
	ErrIOFailure      = errors.New("cannot write chart output")
	ErrEmptySeries    = errors.New("series has no data")
	ErrBackendFailure = errors.New("chart backend failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case IOFailure:
		return ErrIOFailure
	case EmptySeries:
		return ErrEmptySeries
	case BackendFailure:
		return ErrBackendFailure
	default:
		return nil
	}
}

// RenderError carries the failure kind and the output path of a render.
// errors.Is matches both the kind's sentinel and the wrapped cause.
type RenderError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func newRenderError(kind ErrorKind, path string, err error) *RenderError {
	return &RenderError{Kind: kind, Path: path, Err: err}
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render chart (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("render chart %q (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the ErrorKind of err, or 0 if err is not a RenderError.
func KindOf(err error) ErrorKind {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}
