package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Find when no post has the slug.
	ErrNotFound = errors.New("content: post not found")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("content: invalid post")
	// ErrCollision matches every *CollisionError.
	ErrCollision = errors.New("content: slug already exists")
)

// ValidationError reports a missing or malformed field on Create.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CollisionError is returned by Create when the slug is already used by
// any record in the store.
type CollisionError struct {
	Slug string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("content: slug %q already exists", e.Slug)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// StorageError wraps a filesystem or decoding failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("content: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
