// Package storage contains the S3-compatible object storage client and the attachment
// backends that keep resume binaries either inline in the application record or in a bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrObjectNotFound is returned by Get when the key is absent from the bucket.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions carries the upload size and the headers stored next to a resume.
// Size -1 lets the backend stream in parts.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the bucket reports back for a stored resume.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Filename    string
}

// Storage is the bucket surface the resume backend needs.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get fails with ErrObjectNotFound for a missing key.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete of a missing key succeeds.
	Delete(ctx context.Context, key string) error
}

// filenameMeta is the user metadata key holding the uploaded file name.
const filenameMeta = "filename"

func infoFromMetadata(key string, size int64, etag, contentType string, meta map[string]string) ObjectInfo {
	info := ObjectInfo{Key: key, Size: size, ETag: etag, ContentType: contentType}
	for k, v := range meta {
		// minio returns user metadata with canonical header casing.
		if strings.EqualFold(k, filenameMeta) {
			info.Filename = v
		}
	}
	return info
}
