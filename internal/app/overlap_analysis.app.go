package app

import (
	"context"
	"etfoverlap/internal/calculator"
	"etfoverlap/internal/domain"
	"etfoverlap/internal/logger"
	"etfoverlap/internal/repository"
	"etfoverlap/internal/service"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultFetchTimeout     = 30 * time.Second
	DefaultMaxFetchAttempts = 3
	DefaultRetryBackoff     = 500 * time.Millisecond
)

type OverlapAnalysisApp interface {
	// Analyze resolves every requested fund and runs the full overlap
	// analysis. Funds that fail to resolve are reported in Excluded as
	// long as at least two succeed.
	Analyze(ctx context.Context, fundIdentifiers []string) (*domain.AnalysisResult, error)
	// Compare is the two-fund mode; any failed lookup fails the request
	Compare(ctx context.Context, fundIdentifierA, fundIdentifierB string) (*domain.AnalysisResult, error)
	ExpireCache(ctx context.Context, fundIdentifiers []string, all bool) error
	InspectCache(ctx context.Context, fundIdentifier string) (*service.CacheInspection, error)
	PurgeStaleCache(ctx context.Context) (int64, error)
}

type OverlapAnalysisAppHandler struct {
	CacheService       service.HoldingsCacheService
	ProviderRepository repository.HoldingsProviderRepository

	FetchTimeout     time.Duration
	MaxFetchAttempts int
	RetryBackoff     time.Duration
}

func NewOverlapAnalysisApp(
	cacheService service.HoldingsCacheService,
	providerRepository repository.HoldingsProviderRepository,
	fetchTimeout time.Duration,
	maxFetchAttempts int,
) OverlapAnalysisApp {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if maxFetchAttempts <= 0 {
		maxFetchAttempts = DefaultMaxFetchAttempts
	}
	return OverlapAnalysisAppHandler{
		CacheService:       cacheService,
		ProviderRepository: providerRepository,
		FetchTimeout:       fetchTimeout,
		MaxFetchAttempts:   maxFetchAttempts,
		RetryBackoff:       DefaultRetryBackoff,
	}
}

func (h OverlapAnalysisAppHandler) Analyze(ctx context.Context, fundIdentifiers []string) (*domain.AnalysisResult, error) {
	ids, err := normalizeAll(fundIdentifiers)
	if err != nil {
		return nil, err
	}
	ids = dedupe(ids)

	endSpan := domain.StartSpan(ctx, "resolve holdings")
	outcomes := h.resolveAll(ctx, ids)
	endSpan()

	funds := []domain.FundSnapshot{}
	failed := []domain.FundFailure{}
	for _, o := range outcomes {
		if o.err != nil {
			failed = append(failed, domain.FundFailure{Identifier: o.id, Err: o.err})
			continue
		}
		funds = append(funds, *o.snapshot)
	}

	log := logger.FromContext(ctx)
	for _, f := range failed {
		log.Warnf("excluding %s from analysis: %v", f.Identifier, f.Err)
	}

	if len(funds) < 2 {
		return nil, &domain.InsufficientInputError{
			Resolved: len(funds),
			Failed:   failed,
		}
	}

	endSpan = domain.StartSpan(ctx, "calculate overlap")
	result, err := calculator.CalculateOverlapAnalysis(funds)
	endSpan()
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		result.Excluded = failed
	}

	return result, nil
}

func (h OverlapAnalysisAppHandler) Compare(ctx context.Context, fundIdentifierA, fundIdentifierB string) (*domain.AnalysisResult, error) {
	ids, err := normalizeAll([]string{fundIdentifierA, fundIdentifierB})
	if err != nil {
		return nil, err
	}

	endSpan := domain.StartSpan(ctx, "resolve holdings")
	outcomes := h.resolveAll(ctx, ids)
	endSpan()

	funds := make([]domain.FundSnapshot, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		funds = append(funds, *o.snapshot)
	}

	endSpan = domain.StartSpan(ctx, "calculate overlap")
	defer endSpan()
	return calculator.CalculateOverlapAnalysis(funds)
}

func (h OverlapAnalysisAppHandler) ExpireCache(ctx context.Context, fundIdentifiers []string, all bool) error {
	if all {
		return h.CacheService.ExpireAll(ctx)
	}

	ids, err := normalizeAll(fundIdentifiers)
	if err != nil {
		return err
	}
	for _, id := range dedupe(ids) {
		if err := h.CacheService.Expire(ctx, id); err != nil {
			return fmt.Errorf("failed to expire %s: %w", id, err)
		}
	}
	return nil
}

func (h OverlapAnalysisAppHandler) InspectCache(ctx context.Context, fundIdentifier string) (*service.CacheInspection, error) {
	return h.CacheService.Inspect(ctx, domain.NormalizeFundIdentifier(fundIdentifier))
}

func (h OverlapAnalysisAppHandler) PurgeStaleCache(ctx context.Context) (int64, error) {
	return h.CacheService.PurgeStale(ctx)
}

type resolveOutcome struct {
	id       string
	snapshot *domain.FundSnapshot
	err      error
}

// resolveAll looks up every id concurrently; outcomes keep input order
func (h OverlapAnalysisAppHandler) resolveAll(ctx context.Context, ids []string) []resolveOutcome {
	outcomes := make([]resolveOutcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			snapshot, err := h.CacheService.Resolve(ctx, id, h.fetchWithRetry)
			outcomes[i] = resolveOutcome{
				id:       id,
				snapshot: snapshot,
				err:      err,
			}
		}(i, id)
	}
	wg.Wait()

	return outcomes
}

// fetchWithRetry bounds each provider call by FetchTimeout and retries
// transient failures with linear backoff
func (h OverlapAnalysisAppHandler) fetchWithRetry(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error) {
	log := logger.FromContext(ctx)

	attempts := h.MaxFetchAttempts
	if attempts <= 0 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: h.RetryBackoff}, uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	var snapshot *domain.FundSnapshot
	var lastErr error
	err := backoff.RetryNotify(func() error {
		attempt++
		fetchCtx, cancel := context.WithTimeout(ctx, h.FetchTimeout)
		defer cancel()

		s, err := h.ProviderRepository.Fetch(fetchCtx, fundIdentifier)
		if err != nil {
			if !domain.IsTransient(err) {
				return backoff.Permanent(err)
			}
			lastErr = err
			return err
		}
		snapshot = s
		return nil
	}, policy, func(err error, wait time.Duration) {
		log.Infof("attempt %d/%d for %s failed, retrying in %s: %v", attempt, attempts, fundIdentifier, wait, err)
	})
	if err != nil {
		// a context that ends between attempts reports the last provider error
		if lastErr != nil && ctx.Err() != nil {
			return nil, lastErr
		}
		return nil, err
	}

	return snapshot, nil
}

// linearBackOff waits step, 2*step, 3*step and so on
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.step * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// normalizeAll fails on the first invalid identifier so nothing is looked
// up for a partially bad request
func normalizeAll(fundIdentifiers []string) ([]string, error) {
	out := make([]string, 0, len(fundIdentifiers))
	for _, raw := range fundIdentifiers {
		id := domain.NormalizeFundIdentifier(raw)
		if err := domain.ValidateFundIdentifier(id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func dedupe(ids []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
