package calculator

import (
	"etfoverlap/internal/domain"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// CalculateOverlapAnalysis is the full N-fund analysis. It is pure: the
// input snapshots are read, never modified, and all arithmetic is done at
// full precision. Rounding belongs to serialization.
func CalculateOverlapAnalysis(funds []domain.FundSnapshot) (*domain.AnalysisResult, error) {
	if len(funds) < 2 {
		return nil, &domain.InsufficientInputError{Resolved: len(funds)}
	}

	pairwise := CalculateAllPairwiseOverlaps(funds)

	overlaps := make([]float64, 0, len(pairwise))
	for _, p := range pairwise {
		overlaps = append(overlaps, p.OverlapPercentage)
	}
	avgOverlap, err := stats.Mean(overlaps)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average overlap: %w", err)
	}

	stockOverlap := CalculateStockOverlap(funds)
	score := DiversificationScore(avgOverlap)

	fundsCopy := make([]domain.FundSnapshot, 0, len(funds))
	for _, f := range funds {
		fundsCopy = append(fundsCopy, f.Copy())
	}

	return &domain.AnalysisResult{
		Funds:        fundsCopy,
		Pairwise:     pairwise,
		StockOverlap: stockOverlap,
		Summary: domain.AnalysisSummary{
			TotalFunds:               len(funds),
			AverageOverlapPercentage: avgOverlap,
			TotalUniqueStocks:        len(stockOverlap),
			DiversificationScore:     score,
			Band:                     domain.BandForScore(score),
		},
	}, nil
}

// CalculatePairwiseOverlap sums min(weight in a, weight in b) over the
// stocks both funds hold. Shared holdings are listed in a's order.
func CalculatePairwiseOverlap(a, b domain.FundSnapshot) domain.PairwiseOverlap {
	bWeights := make(map[string]float64, len(b.Holdings))
	for _, h := range b.Holdings {
		bWeights[h.StockIdentifier] = h.Weight
	}

	shared := []domain.SharedHolding{}
	total := 0.0
	for _, h := range a.Holdings {
		wb, ok := bWeights[h.StockIdentifier]
		if !ok {
			continue
		}
		s := domain.SharedHolding{
			StockIdentifier: h.StockIdentifier,
			Name:            h.Name,
			WeightInA:       h.Weight,
			WeightInB:       wb,
		}
		shared = append(shared, s)
		total += s.MinWeight()
	}

	return domain.PairwiseOverlap{
		FundA:             a.Ref(),
		FundB:             b.Ref(),
		SharedHoldings:    shared,
		OverlapPercentage: total,
	}
}

// CalculateAllPairwiseOverlaps covers every unordered pair (i < j) in
// input order
func CalculateAllPairwiseOverlaps(funds []domain.FundSnapshot) []domain.PairwiseOverlap {
	out := []domain.PairwiseOverlap{}
	for i := 0; i < len(funds); i++ {
		for j := i + 1; j < len(funds); j++ {
			out = append(out, CalculatePairwiseOverlap(funds[i], funds[j]))
		}
	}
	return out
}

// CalculateStockOverlap groups every holding across funds by stock,
// including stocks held by a single fund. Sorted by fund count desc, total
// weight desc, then stock identifier.
func CalculateStockOverlap(funds []domain.FundSnapshot) []domain.StockOverlapEntry {
	entries := map[string]*domain.StockOverlapEntry{}
	// per stock, funds already counted. guards against the same fund
	// being passed twice
	seenFunds := map[string]map[string]struct{}{}

	for _, f := range funds {
		for _, h := range f.Holdings {
			e, ok := entries[h.StockIdentifier]
			if !ok {
				e = &domain.StockOverlapEntry{
					StockIdentifier:  h.StockIdentifier,
					Name:             h.Name,
					PerFundBreakdown: []domain.FundWeight{},
				}
				entries[h.StockIdentifier] = e
				seenFunds[h.StockIdentifier] = map[string]struct{}{}
			}
			if _, ok := seenFunds[h.StockIdentifier][f.FundIdentifier]; ok {
				continue
			}
			seenFunds[h.StockIdentifier][f.FundIdentifier] = struct{}{}

			e.AppearsInCount++
			e.TotalWeightAcrossFunds += h.Weight
			e.PerFundBreakdown = append(e.PerFundBreakdown, domain.FundWeight{
				FundIdentifier: f.FundIdentifier,
				FundName:       f.FundName,
				Weight:         h.Weight,
			})
		}
	}

	out := make([]domain.StockOverlapEntry, 0, len(entries))
	for _, e := range entries {
		e.AverageWeight = e.TotalWeightAcrossFunds / float64(e.AppearsInCount)
		out = append(out, *e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AppearsInCount != out[j].AppearsInCount {
			return out[i].AppearsInCount > out[j].AppearsInCount
		}
		if out[i].TotalWeightAcrossFunds != out[j].TotalWeightAcrossFunds {
			return out[i].TotalWeightAcrossFunds > out[j].TotalWeightAcrossFunds
		}
		return out[i].StockIdentifier < out[j].StockIdentifier
	})

	return out
}

// DiversificationScore is 100 minus the average pairwise overlap, clamped
// to [0, 100]
func DiversificationScore(averageOverlapPercentage float64) float64 {
	score := 100 - averageOverlapPercentage
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
