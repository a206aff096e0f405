package repository

import (
	"etfoverlap/internal/domain"
	"sync"
	"time"
)

const DefaultCacheTTL = 24 * time.Hour

// HoldingsCacheRepository stores the latest snapshot per fund identifier.
// Get only reports fresh records; stale ones stay in place for Inspect
// until they are overwritten, expired or purged.
type HoldingsCacheRepository interface {
	Get(fundIdentifier string) (*domain.FundSnapshot, error)
	Put(fundIdentifier string, snapshot domain.FundSnapshot) error
	Expire(fundIdentifier string) error
	ExpireAll() error
	Inspect(fundIdentifier string) (*domain.CacheRecord, error)
	PurgeStale() (int64, error)
}

type cacheFreshness struct {
	ttl time.Duration
	now func() time.Time
}

func newCacheFreshness(ttl time.Duration, now func() time.Time) cacheFreshness {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return cacheFreshness{ttl: ttl, now: now}
}

func (c cacheFreshness) isFresh(r domain.CacheRecord) bool {
	return !r.IsStale(c.now(), c.ttl)
}

// staleBefore is the cutoff; records stored strictly before it are stale
func (c cacheFreshness) staleBefore() time.Time {
	return c.now().Add(-c.ttl)
}

type memoryHoldingsCacheRepositoryHandler struct {
	cacheFreshness
	mu      *sync.RWMutex
	records map[string]domain.CacheRecord
}

// NewMemoryHoldingsCacheRepository keeps records for the life of the
// process. Snapshots are copied on the way in and out.
func NewMemoryHoldingsCacheRepository(ttl time.Duration, now func() time.Time) HoldingsCacheRepository {
	return memoryHoldingsCacheRepositoryHandler{
		cacheFreshness: newCacheFreshness(ttl, now),
		mu:             &sync.RWMutex{},
		records:        map[string]domain.CacheRecord{},
	}
}

func (h memoryHoldingsCacheRepositoryHandler) Get(fundIdentifier string) (*domain.FundSnapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	record, ok := h.records[fundIdentifier]
	if !ok || !h.isFresh(record) {
		return nil, nil
	}
	snapshot := record.Snapshot.Copy()
	return &snapshot, nil
}

func (h memoryHoldingsCacheRepositoryHandler) Put(fundIdentifier string, snapshot domain.FundSnapshot) error {
	record := domain.CacheRecord{
		Key:      fundIdentifier,
		Snapshot: snapshot.Copy(),
		StoredAt: h.now(),
	}

	h.mu.Lock()
	h.records[fundIdentifier] = record
	h.mu.Unlock()
	return nil
}

func (h memoryHoldingsCacheRepositoryHandler) Expire(fundIdentifier string) error {
	h.mu.Lock()
	delete(h.records, fundIdentifier)
	h.mu.Unlock()
	return nil
}

func (h memoryHoldingsCacheRepositoryHandler) ExpireAll() error {
	h.mu.Lock()
	for k := range h.records {
		delete(h.records, k)
	}
	h.mu.Unlock()
	return nil
}

func (h memoryHoldingsCacheRepositoryHandler) Inspect(fundIdentifier string) (*domain.CacheRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	record, ok := h.records[fundIdentifier]
	if !ok {
		return nil, nil
	}
	record.Snapshot = record.Snapshot.Copy()
	return &record, nil
}

func (h memoryHoldingsCacheRepositoryHandler) PurgeStale() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var purged int64
	for k, record := range h.records {
		if !h.isFresh(record) {
			delete(h.records, k)
			purged++
		}
	}
	return purged, nil
}
