package objects

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/utils"
)

// Error kinds surfaced by the codecs and the object store.
// Callers match them with errors.Is / errors.As.
var (
	ErrNotFound        = errors.New("object not found")
	ErrInvalidHash     = errors.New("invalid object id")
	ErrInvalidObject   = errors.New("invalid object")
	ErrMalformedCommit = errors.New("malformed commit")
	ErrAlreadyExists   = errors.New("already exists")
)

// invalidObject marks err as ErrInvalidObject and keeps it in the chain.
func invalidObject(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidObject, err)
}

func malformedCommit(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedCommit, err)
}

// TypeMismatchError is returned when a stored object is not of the requested type.
type TypeMismatchError struct {
	Hash     string
	Expected utils.ObjectType
	Actual   utils.ObjectType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("object %s is a %s, expected a %s", e.Hash, e.Actual, e.Expected)
}

// IOError wraps a filesystem failure (permissions, disk) while touching path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
