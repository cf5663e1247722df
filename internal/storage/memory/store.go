package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"parseai/internal/domain"
	"parseai/internal/port"
)

type object struct {
	data        []byte
	contentType string
	modified    time.Time
}

// Store is an in-process ObjectStorage used when no bucket is configured.
type Store struct {
	mu      sync.RWMutex
	buckets map[string]map[string]object
	now     func() time.Time
}

var _ port.ObjectStorage = (*Store)(nil)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{buckets: map[string]map[string]object{}, now: time.Now}
}

// Put stores data directly; used to seed sample and customer documents.
func (s *Store) Put(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(bucket)[key] = object{data: append([]byte(nil), data...), modified: s.now().UTC()}
}

func (s *Store) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("memory upload read: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(input.Bucket)[input.Key] = object{data: data, contentType: input.ContentType, modified: s.now().UTC()}
	return &port.UploadOutput{Location: "mem://" + input.Bucket + "/" + input.Key}, nil
}

func (s *Store) Download(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("memory download %s: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), obj.data...), nil
}

func (s *Store) List(_ context.Context, bucket, prefix string) ([]domain.StoredObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.StoredObject
	for key, obj := range s.buckets[bucket] {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		modified := obj.modified
		out = append(out, domain.StoredObject{Key: key, Size: int64(len(obj.data)), LastModified: &modified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) Delete(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets[bucket], key)
	return nil
}

// bucket returns the named bucket, creating it. Callers hold s.mu.
func (s *Store) bucket(name string) map[string]object {
	b, ok := s.buckets[name]
	if !ok {
		b = map[string]object{}
		s.buckets[name] = b
	}
	return b
}
