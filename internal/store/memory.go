package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	records map[string]*Record // by reference
	order   map[string]int64   // insertion sequence, breaks CreatedAt ties
	seq     int64
	now     func() time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
		order:   make(map[string]int64),
		now:     time.Now,
	}
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, reference string, f Fields) (*Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	rec, ok := s.records[reference]
	if !ok {
		rec = &Record{
			ID:        uuid.New().String(),
			Reference: reference,
			CreatedAt: now,
		}
		s.records[reference] = rec
		s.seq++
		s.order[reference] = s.seq
	}
	f.apply(rec)
	rec.UpdatedAt = now

	out := *rec
	return &out, nil
}

// FindByCarrierShipmentID implements Store.
func (s *MemoryStore) FindByCarrierShipmentID(ctx context.Context, id string) (*Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found *Record
		seq   int64
	)
	for ref, rec := range s.records {
		if rec.CarrierShipmentID != id {
			continue
		}
		if found == nil || s.order[ref] > seq {
			found, seq = rec, s.order[ref]
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}

	out := *found
	return &out, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return s.order[result[i].Reference] > s.order[result[j].Reference]
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ Store = (*MemoryStore)(nil)
