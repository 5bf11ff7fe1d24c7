// Package storage provides object storage implementations for uploaded
// assets such as tenant branding files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned when a storage key has no object behind it
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage abstracts an S3-compatible object store
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// BrandingLogoKey builds the storage key for a tenant's logo
func BrandingLogoKey(tenantID uuid.UUID, filename string) string {
	return brandingKey(tenantID, "logo", filename)
}

// BrandingFaviconKey builds the storage key for a tenant's favicon
func BrandingFaviconKey(tenantID uuid.UUID, filename string) string {
	return brandingKey(tenantID, "favicon", filename)
}

func brandingKey(tenantID uuid.UUID, kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("tenants/%s/branding/%s%s", tenantID, kind, ext)
}

type memObject struct {
	data        []byte
	contentType string
}

// InMemoryObjectStorage is a map-backed ObjectStorage for tests
type InMemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]memObject
	baseURL string
}

// NewInMemoryObjectStorage creates an empty in-memory store
func NewInMemoryObjectStorage() *InMemoryObjectStorage {
	return &InMemoryObjectStorage{
		objects: make(map[string]memObject),
		baseURL: "https://storage.example.com",
	}
}

func (s *InMemoryObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = memObject{data: data, contentType: contentType}
	return nil
}

func (s *InMemoryObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

func (s *InMemoryObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

func (s *InMemoryObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, ErrObjectNotFound
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.baseURL + "/" + storageKey, expiresAt, nil
}

var _ ObjectStorage = (*InMemoryObjectStorage)(nil)
