package repository

import (
	"context"
	"errors"
	"etfoverlap/internal/domain"
	"etfoverlap/pkg/justetf"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeJustEtfClient struct {
	profile *justetf.EtfProfile
	err     error
}

func (f fakeJustEtfClient) GetEtfProfile(ctx context.Context, isin string) (*justetf.EtfProfile, error) {
	return f.profile, f.err
}

func TestJustEtfHoldingsProviderRepository_Fetch(t *testing.T) {
	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("maps profile to snapshot", func(t *testing.T) {
		handler := justEtfHoldingsProviderRepositoryHandler{
			Client: fakeJustEtfClient{profile: &justetf.EtfProfile{
				Isin: "IE00B4L5Y983",
				Name: "World",
				Holdings: []justetf.EtfHolding{
					{Isin: "US0378331005", Name: "Apple", WeightText: "4.72"},
					{Isin: "XX", Name: "Broken", WeightText: ""},
					{Isin: "US5949181045", Name: "Microsoft", WeightText: "4.13"},
				},
			}},
			Now: func() time.Time { return fetchedAt },
		}

		snapshot, err := handler.Fetch(context.Background(), "IE00B4L5Y983")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&domain.FundSnapshot{
			FundIdentifier: "IE00B4L5Y983",
			FundName:       "World",
			Holdings: []domain.Holding{
				{StockIdentifier: "US0378331005", Name: "Apple", Weight: 4.72},
				{StockIdentifier: "US5949181045", Name: "Microsoft", Weight: 4.13},
			},
			HoldingsAvailable: true,
			FetchedAt:         fetchedAt,
		}, snapshot))
	})

	t.Run("invalid provider data becomes typed error", func(t *testing.T) {
		handler := justEtfHoldingsProviderRepositoryHandler{
			Client: fakeJustEtfClient{profile: &justetf.EtfProfile{
				Name: "World",
				Holdings: []justetf.EtfHolding{
					{Isin: "US0378331005", Name: "Apple", WeightText: "472"},
				},
			}},
			Now: time.Now,
		}

		_, err := handler.Fetch(context.Background(), "IE00B4L5Y983")
		require.Equal(t, domain.ErrorTypeInvalidSnapshot, domain.ErrorType(err))
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want string
		}{
			{"not found", justetf.ErrNotFound, domain.ErrorTypeNotFound},
			{"no holdings", justetf.ErrNoHoldings, domain.ErrorTypeNoData},
			{"rate limited", &justetf.StatusError{StatusCode: http.StatusTooManyRequests}, domain.ErrorTypeTransient},
			{"server error", &justetf.StatusError{StatusCode: http.StatusBadGateway}, domain.ErrorTypeTransient},
			{"network", errors.New("connection reset"), domain.ErrorTypeTransient},
			{"forbidden", &justetf.StatusError{StatusCode: http.StatusForbidden}, domain.ErrorTypeInternal},
		}
		for _, c := range cases {
			handler := justEtfHoldingsProviderRepositoryHandler{
				Client: fakeJustEtfClient{err: c.err},
				Now:    time.Now,
			}
			_, err := handler.Fetch(context.Background(), "IE00B4L5Y983")
			require.Equal(t, c.want, domain.ErrorType(err), c.name)
		}
	})
}
