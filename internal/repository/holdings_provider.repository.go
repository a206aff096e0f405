package repository

import (
	"context"
	"errors"
	"etfoverlap/internal/domain"
	"etfoverlap/internal/logger"
	"etfoverlap/pkg/justetf"
	"time"

	"github.com/shopspring/decimal"
)

// HoldingsProviderRepository fetches a fresh snapshot for a fund from the
// upstream source. It never retries and never caches.
type HoldingsProviderRepository interface {
	Fetch(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error)
}

type justEtfClient interface {
	GetEtfProfile(ctx context.Context, isin string) (*justetf.EtfProfile, error)
}

type justEtfHoldingsProviderRepositoryHandler struct {
	Client justEtfClient
	Now    func() time.Time
}

func NewJustEtfHoldingsProviderRepository(client justetf.Client) HoldingsProviderRepository {
	return justEtfHoldingsProviderRepositoryHandler{
		Client: client,
		Now:    time.Now,
	}
}

func (h justEtfHoldingsProviderRepositoryHandler) Fetch(ctx context.Context, fundIdentifier string) (*domain.FundSnapshot, error) {
	log := logger.FromContext(ctx)

	profile, err := h.Client.GetEtfProfile(ctx, fundIdentifier)
	if err != nil {
		return nil, mapProviderError(fundIdentifier, err)
	}

	holdings := []domain.Holding{}
	for _, ph := range profile.Holdings {
		weight, err := decimal.NewFromString(ph.WeightText)
		if err != nil {
			log.Debugf("skipping holding %s of %s with unparsable weight %q", ph.Isin, fundIdentifier, ph.WeightText)
			continue
		}
		holdings = append(holdings, domain.Holding{
			StockIdentifier: ph.Isin,
			Name:            ph.Name,
			Weight:          weight.InexactFloat64(),
		})
	}

	return domain.NewFundSnapshot(
		fundIdentifier,
		profile.Name,
		holdings,
		true,
		h.Now().UTC(),
	)
}

func mapProviderError(fundIdentifier string, err error) error {
	if errors.Is(err, justetf.ErrNotFound) {
		return &domain.NotFoundError{Identifier: fundIdentifier}
	}
	if errors.Is(err, justetf.ErrNoHoldings) {
		return &domain.NoDataError{Identifier: fundIdentifier}
	}

	var statusErr *justetf.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode < 500 && statusErr.StatusCode != 429 && statusErr.StatusCode != 408 {
		// other 4xx mean the request itself is wrong; retrying will not help
		return err
	}

	// network failures, timeouts, 408, 429 and 5xx
	return &domain.TransientError{Identifier: fundIdentifier, Err: err}
}
