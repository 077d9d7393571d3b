// Package uierr classifies the failures the renderer reports. None of them
// are fatal: callers log the error and degrade the affected visual.
package uierr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates a malformed or missing theme attribute.
	KindConfig
	// KindAsset indicates an image, canvas or font that failed to load.
	KindAsset
	// KindLookup indicates an unresolved named resource.
	KindLookup
	// KindUnsupported indicates an unknown resource type or font format.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAsset:
		return "asset"
	case KindLookup:
		return "lookup"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound        = errors.New("not found")
	ErrNoFilename      = errors.New("no filename specified")
	ErrUnsupportedFont = errors.New("non-TTF fonts are not supported")
	ErrNoArchive       = errors.New("no archive")
)

// Error is a structured renderer error.
type Error struct {
	// Op is the operation that failed (e.g. "resource.LoadImage").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Name is the resource or attribute involved, if any.
	Name string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s [%s] %s: %v", e.Op, e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error.
func New(op string, kind Kind, name string, err error) *Error {
	return &Error{Op: op, Kind: kind, Name: name, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
