package domain

import (
	"fmt"
	"math"
	"time"
)

type Holding struct {
	StockIdentifier string
	Name            string
	// Weight is the percentage of the fund's portfolio, in [0, 100]
	Weight float64
}

// FundSnapshot is one fetch of a fund's constituents. Holdings is never
// nil. The justETF provider reports a fund without holdings data as
// NoDataError, so stored snapshots always carry HoldingsAvailable; the
// column stays in the record for other providers.
type FundSnapshot struct {
	FundIdentifier    string
	FundName          string
	Holdings          []Holding
	HoldingsAvailable bool
	FetchedAt         time.Time
}

// NewFundSnapshot builds a snapshot from provider output and rejects
// anything that does not satisfy the model invariants
func NewFundSnapshot(fundIdentifier, fundName string, holdings []Holding, holdingsAvailable bool, fetchedAt time.Time) (*FundSnapshot, error) {
	if err := ValidateFundIdentifier(fundIdentifier); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.StockIdentifier == "" {
			return nil, &InvalidSnapshotError{
				Identifier: fundIdentifier,
				Reason:     fmt.Sprintf("holding %q has no stock identifier", h.Name),
			}
		}
		if math.IsNaN(h.Weight) || h.Weight < 0 || h.Weight > 100 {
			return nil, &InvalidSnapshotError{
				Identifier: fundIdentifier,
				Reason:     fmt.Sprintf("weight %v for %s is outside [0, 100]", h.Weight, h.StockIdentifier),
			}
		}
		if _, ok := seen[h.StockIdentifier]; ok {
			return nil, &InvalidSnapshotError{
				Identifier: fundIdentifier,
				Reason:     fmt.Sprintf("duplicate stock identifier %s", h.StockIdentifier),
			}
		}
		seen[h.StockIdentifier] = struct{}{}
		out = append(out, h)
	}

	return &FundSnapshot{
		FundIdentifier:    fundIdentifier,
		FundName:          fundName,
		Holdings:          out,
		HoldingsAvailable: holdingsAvailable,
		FetchedAt:         fetchedAt,
	}, nil
}

func (s FundSnapshot) Copy() FundSnapshot {
	holdings := make([]Holding, len(s.Holdings))
	copy(holdings, s.Holdings)
	s.Holdings = holdings
	return s
}

func (s FundSnapshot) TotalWeight() float64 {
	total := 0.0
	for _, h := range s.Holdings {
		total += h.Weight
	}
	return total
}

func (s FundSnapshot) Ref() FundRef {
	return FundRef{
		FundIdentifier: s.FundIdentifier,
		FundName:       s.FundName,
	}
}

type FundRef struct {
	FundIdentifier string
	FundName       string
}

type CacheRecord struct {
	Key      string
	Snapshot FundSnapshot
	StoredAt time.Time
}

// IsStale reports whether the record is older than ttl at now. A record
// aged exactly ttl is still fresh.
func (r CacheRecord) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.StoredAt) > ttl
}
