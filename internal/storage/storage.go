// Package storage keeps uploaded resumes in object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/job-board/internal/config"
)

var ErrNotFound = errors.New("storage: object not found")

// ResumeStore stores resume files by key.
type ResumeStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ResumeKey builds a unique object key for a resume uploaded to a job.
func ResumeKey(tenantID uuid.UUID, jobID uint, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("tenants/%s/jobs/%d/resumes/%s/%s", tenantID, jobID, uuid.NewString(), name)
}

// New returns the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ResumeStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "memory", "":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
