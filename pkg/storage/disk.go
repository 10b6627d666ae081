// Package storage provides the filesystem abstraction used for database
// backups.
//
// Two drivers are available:
//   - "local": local filesystem (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	mgr := storage.Connect(ctx)
//	disk, err := mgr.Default()
//	err = disk.PutStream(ctx, "backups/cafedb_backup_20260101_080000.sqlite", f)
package storage

import (
	"context"
	"io"
	"time"
)

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(ctx context.Context, path string, r io.Reader) error

	// Size returns the byte size of the file.
	Size(ctx context.Context, path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(ctx context.Context, path string) (time.Time, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists file paths directly inside directory. A missing directory
	// lists as empty.
	Files(ctx context.Context, directory string) ([]string, error)
}
