package proofread

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every kind is terminal for the request.
var (
	ErrConfig          = errors.New("configuration error")
	ErrUpstream        = errors.New("upstream failure")
	ErrMalformedOutput = errors.New("malformed model output")
	ErrBounds          = errors.New("correction span out of bounds")
)

// Wire names for each kind.
const (
	KindConfig          = "config"
	KindUpstream        = "upstream"
	KindMalformedOutput = "malformed_output"
	KindBounds          = "bounds"
	KindUnknown         = "unknown"
)

// UpstreamError wraps transport, authentication, and empty-candidate failures.
type UpstreamError struct {
	Engine string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstream, e.Engine, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// MalformedOutputError keeps the raw model text, which cannot be reproduced.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedOutput, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

// BoundsError reports the first correction whose span does not fit the
// original input. Length is counted in code points.
type BoundsError struct {
	Index      int
	StartIndex int
	EndIndex   int
	Length     int
	Raw        string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: correction %d has span [%d,%d] for input of %d characters",
		ErrBounds, e.Index, e.StartIndex, e.EndIndex, e.Length)
}

func (e *BoundsError) Is(target error) bool { return target == ErrBounds }

// Kind maps err to its wire name.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedOutput):
		return KindMalformedOutput
	case errors.Is(err, ErrBounds):
		return KindBounds
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	case errors.Is(err, ErrConfig):
		return KindConfig
	default:
		return KindUnknown
	}
}
