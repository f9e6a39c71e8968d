// Package blobstore provides file storage for uploaded health documents.
// It defines the BlobStore interface, an S3-backed implementation, an
// in-memory implementation suitable for testing and development, and an Echo
// HTTP handler for multipart upload.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrMissingFileName    = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed upload size in bytes (25 MB).
const MaxFileSize = 25 * 1024 * 1024

// AllowedContentTypes lists MIME types accepted for health document uploads.
var AllowedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// StoredObject describes an uploaded file after storage.
type StoredObject struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// BlobStore defines the contract for blob storage backends.
type BlobStore interface {
	Put(ctx context.Context, fileName, contentType string, content io.Reader) (*StoredObject, error)
}

// objectKey builds a collision-free storage key that keeps the original
// file extension.
func objectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("uploads/%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.New().String(), ext)
}

// readValidated reads content up to the size limit and checks the basics.
func readValidated(fileName, contentType string, content io.Reader) ([]byte, error) {
	if fileName == "" {
		return nil, ErrMissingFileName
	}
	if !AllowedContentTypes[contentType] {
		return nil, ErrInvalidContentType
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// MemoryStore is a thread-safe, in-memory BlobStore for testing/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, fileName, contentType string, content io.Reader) (*StoredObject, error) {
	data, err := readValidated(fileName, contentType, content)
	if err != nil {
		return nil, err
	}

	key := objectKey(fileName)

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return &StoredObject{
		Key:         key,
		URL:         "memory://" + key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// Get returns the stored bytes for a key. Used by tests.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
