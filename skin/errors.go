package skin

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotInitialized     = errors.New("object not initialized")
	ErrAlreadyInitialized = errors.New("object already initialized")
	ErrDisposed           = errors.New("object already disposed")
	ErrMissingID          = errors.New("missing object id")
)

// ObjectError describes a failed operation on one skin object
type ObjectError struct {
	// Op is the operation that failed (e.g. "guiobject.Resize")
	Op string
	// Kind is the object kind, if known
	Kind string
	// ID is the lowercased object id, if any
	ID string
	// Err is the underlying error
	Err error
}

func (e *ObjectError) Error() string {
	switch {
	case e.Kind != "" && e.ID != "":
		return fmt.Sprintf("%s [%s id=%q]: %v", e.Op, e.Kind, e.ID, e.Err)
	case e.Kind != "":
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	case e.ID != "":
		return fmt.Sprintf("%s id=%q: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}
