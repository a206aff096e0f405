package service

import (
	"context"
	"etfoverlap/internal/domain"
	"etfoverlap/internal/logger"
	"etfoverlap/internal/repository"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a fresh snapshot on a cache miss
type FetchFunc func(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error)

type CacheInspection struct {
	Record domain.CacheRecord
	Stale  bool
}

// HoldingsCacheService is the only way the rest of the app touches cached
// holdings. Every identifier is validated before the repository sees it.
type HoldingsCacheService interface {
	// Resolve returns the cached snapshot when fresh, otherwise calls fetch
	// and caches its result. At most one fetch per identifier is in flight
	// at a time; concurrent callers share its outcome. Fetch errors are
	// returned as-is and never cached.
	Resolve(ctx context.Context, fundIdentifier string, fetch FetchFunc) (*domain.FundSnapshot, error)
	Get(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error)
	Put(ctx context.Context, fundIdentifier string, snapshot domain.FundSnapshot) error
	Expire(ctx context.Context, fundIdentifier string) error
	ExpireAll(ctx context.Context) error
	Inspect(ctx context.Context, fundIdentifier string) (*CacheInspection, error)
	PurgeStale(ctx context.Context) (int64, error)
}

type holdingsCacheServiceHandler struct {
	CacheRepository repository.HoldingsCacheRepository
	TTL             time.Duration
	Now             func() time.Time

	flights *singleflight.Group
}

func NewHoldingsCacheService(
	cacheRepository repository.HoldingsCacheRepository,
	ttl time.Duration,
	now func() time.Time,
) HoldingsCacheService {
	if ttl <= 0 {
		ttl = repository.DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return holdingsCacheServiceHandler{
		CacheRepository: cacheRepository,
		TTL:             ttl,
		Now:             now,
		flights:         &singleflight.Group{},
	}
}

func (h holdingsCacheServiceHandler) Resolve(ctx context.Context, fundIdentifier string, fetch FetchFunc) (*domain.FundSnapshot, error) {
	log := logger.FromContext(ctx)

	cached, err := h.Get(ctx, fundIdentifier)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		log.Debugf("holdings cache hit for %s", fundIdentifier)
		return cached, nil
	}

	// the flight outlives any single caller; each caller only stops waiting
	// when its own ctx is done
	flightCtx := context.WithoutCancel(ctx)
	ch := h.flights.DoChan(fundIdentifier, func() (interface{}, error) {
		// another flight may have filled the cache between our miss and now
		cached, err := h.CacheRepository.Get(fundIdentifier)
		if err != nil {
			return nil, fmt.Errorf("failed to read holdings cache for %s: %w", fundIdentifier, err)
		}
		if cached != nil {
			return cached, nil
		}

		log.Infof("holdings cache miss for %s, fetching", fundIdentifier)
		snapshot, err := fetch(flightCtx, fundIdentifier)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			return nil, fmt.Errorf("fetch returned no snapshot for %s", fundIdentifier)
		}

		if err := h.CacheRepository.Put(fundIdentifier, *snapshot); err != nil {
			return nil, fmt.Errorf("failed to cache holdings for %s: %w", fundIdentifier, err)
		}
		return snapshot, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debugf("shared in-flight fetch for %s", fundIdentifier)
		}
		snapshot := res.Val.(*domain.FundSnapshot).Copy()
		return &snapshot, nil
	}
}

func (h holdingsCacheServiceHandler) Get(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error) {
	if err := domain.ValidateFundIdentifier(fundIdentifier); err != nil {
		return nil, err
	}
	snapshot, err := h.CacheRepository.Get(fundIdentifier)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings cache for %s: %w", fundIdentifier, err)
	}
	return snapshot, nil
}

func (h holdingsCacheServiceHandler) Put(ctx context.Context, fundIdentifier string, snapshot domain.FundSnapshot) error {
	if err := domain.ValidateFundIdentifier(fundIdentifier); err != nil {
		return err
	}
	if err := h.CacheRepository.Put(fundIdentifier, snapshot); err != nil {
		return fmt.Errorf("failed to cache holdings for %s: %w", fundIdentifier, err)
	}
	return nil
}

func (h holdingsCacheServiceHandler) Expire(ctx context.Context, fundIdentifier string) error {
	if err := domain.ValidateFundIdentifier(fundIdentifier); err != nil {
		return err
	}
	if err := h.CacheRepository.Expire(fundIdentifier); err != nil {
		return err
	}
	logger.FromContext(ctx).Infof("expired holdings cache for %s", fundIdentifier)
	return nil
}

func (h holdingsCacheServiceHandler) ExpireAll(ctx context.Context) error {
	if err := h.CacheRepository.ExpireAll(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("expired entire holdings cache")
	return nil
}

func (h holdingsCacheServiceHandler) Inspect(ctx context.Context, fundIdentifier string) (*CacheInspection, error) {
	if err := domain.ValidateFundIdentifier(fundIdentifier); err != nil {
		return nil, err
	}
	record, err := h.CacheRepository.Inspect(fundIdentifier)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return &CacheInspection{
		Record: *record,
		Stale:  record.IsStale(h.Now(), h.TTL),
	}, nil
}

func (h holdingsCacheServiceHandler) PurgeStale(ctx context.Context) (int64, error) {
	purged, err := h.CacheRepository.PurgeStale()
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Infof("purged %d stale holdings cache records", purged)
	return purged, nil
}
