package storage

import (
	"context"
	"errors"
)

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
)

// Object is a stored blob plus the content type it was written with.
type Object struct {
	Body        []byte
	ContentType string
}

// ObjectStorage defines the interface for object storage operations.
type ObjectStorage interface {
	// PutObject writes (or overwrites) an object.
	PutObject(ctx context.Context, objectKey string, obj Object) error

	// GetObject reads an object; ErrObjectNotFound when the key does not exist.
	GetObject(ctx context.Context, objectKey string) (*Object, error)

	// ListKeys returns every object key that starts with prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)

	// ListPrefixes returns the distinct "directories" directly under prefix,
	// split on delimiter (S3 CommonPrefixes).
	ListPrefixes(ctx context.Context, prefix, delimiter string) ([]string, error)

	// DeleteObjects removes the given objects. Missing keys are not an error.
	DeleteObjects(ctx context.Context, objectKeys []string) error
}
