package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
)

// MemoryObjectStore keeps blobs in-process. Used for the default stack and
// in tests; semantics match the Redis-backed store.
type MemoryObjectStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{data: make(map[string][]byte)}
}

func (s *MemoryObjectStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
	return nil
}

func (s *MemoryObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (s *MemoryObjectStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryObjectStore) Close() error { return nil }

// MemoryRecordSink keeps appended records in order.
type MemoryRecordSink struct {
	mu      sync.RWMutex
	records []models.PricingRecord
}

func NewMemoryRecordSink() *MemoryRecordSink { return &MemoryRecordSink{} }

func (s *MemoryRecordSink) Init(context.Context) error { return nil }

func (s *MemoryRecordSink) Append(_ context.Context, records []models.PricingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *MemoryRecordSink) ReadAll(context.Context) ([]models.PricingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PricingRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryRecordSink) Health(context.Context) error { return nil }
func (s *MemoryRecordSink) Close() error                 { return nil }

// NopPublisher discards batches; used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBatch(context.Context, []models.PricingRecord) error { return nil }
func (NopPublisher) Close() error                                               { return nil }
