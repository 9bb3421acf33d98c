package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the blob-storage collaborator boundary. The engine
// never owns bytes durably: accepted content goes to an S3-compatible object
// store and versions carry only the returned key as their content reference.

// PutObjectOptions carries optional upload parameters. Size must be the
// exact byte count when known; -1 lets the backend chunk as it sees fit.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object-store client interface. Streaming only; no local
// disk. Implementations must be safe for concurrent use. There is no delete:
// version history is append-only and content-addressed objects may back more
// than one version.
type Storage interface {
	// Put uploads an object under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object's content with its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// PresignGet returns a time-limited download URL for the object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
