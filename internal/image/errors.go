package imagepkg

import (
	"errors"
	"fmt"
)

// Kinds of render failure. Match them with errors.Is.
var (
	ErrDecode    = errors.New("image could not be decoded")
	ErrSurface   = errors.New("drawing surface unavailable")
	ErrAssetLoad = errors.New("asset could not be loaded")
)

// RenderError reports why a card could not be rendered. No partial card is
// produced when one is returned.
type RenderError struct {
	Op   string // what was being drawn or loaded
	Kind error  // one of ErrDecode, ErrSurface, ErrAssetLoad
	Err  error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render card: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("render card: %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func renderErr(op string, kind, err error) error {
	return &RenderError{Op: op, Kind: kind, Err: err}
}
