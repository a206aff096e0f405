package calculator

import (
	"errors"
	"etfoverlap/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newFund(id, name string, holdings ...domain.Holding) domain.FundSnapshot {
	if holdings == nil {
		holdings = []domain.Holding{}
	}
	return domain.FundSnapshot{
		FundIdentifier:    id,
		FundName:          name,
		Holdings:          holdings,
		HoldingsAvailable: true,
	}
}

func h(id string, weight float64) domain.Holding {
	return domain.Holding{StockIdentifier: id, Name: id + " Inc", Weight: weight}
}

func TestCalculateOverlapAnalysis(t *testing.T) {
	t.Run("two funds end to end", func(t *testing.T) {
		x := newFund("IE00B4L5Y983", "Fund X", h("AAPL", 10), h("MSFT", 5))
		y := newFund("IE00B5BMR087", "Fund Y", h("AAPL", 8), h("GOOG", 3))

		result, err := CalculateOverlapAnalysis([]domain.FundSnapshot{x, y})
		require.NoError(t, err)

		require.Equal(t, 1, len(result.Pairwise))
		require.Equal(t, "", cmp.Diff(
			[]domain.SharedHolding{{StockIdentifier: "AAPL", Name: "AAPL Inc", WeightInA: 10, WeightInB: 8}},
			result.Pairwise[0].SharedHoldings,
		))
		require.Equal(t, float64(8), result.Pairwise[0].OverlapPercentage)
		require.Equal(t, float64(8), result.Summary.AverageOverlapPercentage)
		require.Equal(t, float64(92), result.Summary.DiversificationScore)
		require.Equal(t, domain.DiversificationBand_Excellent, result.Summary.Band)
		require.Equal(t, 3, result.Summary.TotalUniqueStocks)
		require.Equal(t, 2, result.Summary.TotalFunds)
	})

	t.Run("three funds all holding nvda", func(t *testing.T) {
		funds := []domain.FundSnapshot{
			newFund("IE00B4L5Y983", "A", h("NVDA", 5)),
			newFund("IE00B5BMR087", "B", h("NVDA", 6)),
			newFund("IE00BK5BQT80", "C", h("NVDA", 7)),
		}

		result, err := CalculateOverlapAnalysis(funds)
		require.NoError(t, err)

		require.Equal(t, 3, len(result.Pairwise))
		require.Equal(t, 1, len(result.StockOverlap))
		nvda := result.StockOverlap[0]
		require.Equal(t, 3, nvda.AppearsInCount)
		require.InDelta(t, 18, nvda.TotalWeightAcrossFunds, 1e-9)
		require.InDelta(t, 6, nvda.AverageWeight, 1e-9)

		// pairs: min(5,6)=5, min(5,7)=5, min(6,7)=6
		require.InDelta(t, 16.0/3, result.Summary.AverageOverlapPercentage, 1e-9)
	})

	t.Run("fewer than two funds", func(t *testing.T) {
		_, err := CalculateOverlapAnalysis([]domain.FundSnapshot{newFund("IE00B4L5Y983", "A", h("AAPL", 1))})
		var insufficient *domain.InsufficientInputError
		require.True(t, errors.As(err, &insufficient))
		require.Equal(t, 1, insufficient.Resolved)

		_, err = CalculateOverlapAnalysis(nil)
		require.Error(t, err)
	})

	t.Run("fund without holdings still counts", func(t *testing.T) {
		empty := newFund("IE00B5BMR087", "Empty")
		empty.HoldingsAvailable = false
		funds := []domain.FundSnapshot{
			newFund("IE00B4L5Y983", "A", h("AAPL", 10)),
			empty,
			newFund("IE00BK5BQT80", "C", h("AAPL", 4)),
		}

		result, err := CalculateOverlapAnalysis(funds)
		require.NoError(t, err)
		require.Equal(t, 3, result.Summary.TotalFunds)
		for _, p := range result.Pairwise {
			if p.FundA.FundIdentifier == "IE00B5BMR087" || p.FundB.FundIdentifier == "IE00B5BMR087" {
				require.Equal(t, float64(0), p.OverlapPercentage)
				require.Equal(t, 0, len(p.SharedHoldings))
			}
		}
		require.InDelta(t, 4.0/3, result.Summary.AverageOverlapPercentage, 1e-9)
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		x := newFund("IE00B4L5Y983", "X", h("MSFT", 5), h("AAPL", 10))
		y := newFund("IE00B5BMR087", "Y", h("AAPL", 8))
		before := []domain.FundSnapshot{x.Copy(), y.Copy()}

		result, err := CalculateOverlapAnalysis([]domain.FundSnapshot{x, y})
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(before, []domain.FundSnapshot{x, y}))

		result.Funds[0].Holdings[0].Weight = 99
		require.Equal(t, float64(5), x.Holdings[0].Weight)
	})

	t.Run("score is clamped for anomalous data", func(t *testing.T) {
		// weights summing past 100 only happen with bad provider data
		x := newFund("IE00B4L5Y983", "X", h("A", 60), h("B", 60))
		y := newFund("IE00B5BMR087", "Y", h("A", 60), h("B", 60))

		result, err := CalculateOverlapAnalysis([]domain.FundSnapshot{x, y})
		require.NoError(t, err)
		require.Equal(t, float64(120), result.Summary.AverageOverlapPercentage)
		require.Equal(t, float64(0), result.Summary.DiversificationScore)
		require.Equal(t, domain.DiversificationBand_Poor, result.Summary.Band)
	})
}

func TestCalculatePairwiseOverlap(t *testing.T) {
	a := newFund("IE00B4L5Y983", "A", h("AAPL", 4.2), h("MSFT", 3.9), h("NVDA", 3.1), h("AMZN", 2.4))
	b := newFund("IE00B5BMR087", "B", h("NVDA", 6.5), h("AAPL", 1.1), h("TSM", 2.2))

	t.Run("symmetric", func(t *testing.T) {
		ab := CalculatePairwiseOverlap(a, b)
		ba := CalculatePairwiseOverlap(b, a)
		require.InDelta(t, ab.OverlapPercentage, ba.OverlapPercentage, 1e-12)
		require.InDelta(t, 4.2, ab.OverlapPercentage, 1e-9)
	})

	t.Run("self overlap equals total weight", func(t *testing.T) {
		aa := CalculatePairwiseOverlap(a, a)
		require.InDelta(t, a.TotalWeight(), aa.OverlapPercentage, 1e-9)
		require.LessOrEqual(t, aa.OverlapPercentage, 100+1e-9)
	})

	t.Run("shared holdings keep a's order", func(t *testing.T) {
		ab := CalculatePairwiseOverlap(a, b)
		ids := []string{}
		for _, s := range ab.SharedHoldings {
			ids = append(ids, s.StockIdentifier)
		}
		require.Equal(t, []string{"AAPL", "NVDA"}, ids)
	})

	t.Run("all pairs computed", func(t *testing.T) {
		c := newFund("IE00BK5BQT80", "C", h("TSM", 1))
		pairs := CalculateAllPairwiseOverlaps([]domain.FundSnapshot{a, b, c})
		require.Equal(t, 3, len(pairs))
		require.Equal(t, "IE00B4L5Y983", pairs[1].FundA.FundIdentifier)
		require.Equal(t, "IE00BK5BQT80", pairs[1].FundB.FundIdentifier)
		require.InDelta(t, 1, pairs[2].OverlapPercentage, 1e-9)
	})
}

func TestCalculateStockOverlap(t *testing.T) {
	funds := []domain.FundSnapshot{
		newFund("IE00B4L5Y983", "A", h("AAPL", 4), h("MSFT", 3), h("ZZZ", 1), h("BBB", 2)),
		newFund("IE00B5BMR087", "B", h("MSFT", 5), h("AAPL", 2), h("AAA", 2)),
		newFund("IE00BK5BQT80", "C", h("AAPL", 1), h("CCC", 9)),
	}

	entries := CalculateStockOverlap(funds)

	t.Run("sort order", func(t *testing.T) {
		ids := []string{}
		for _, e := range entries {
			ids = append(ids, e.StockIdentifier)
		}
		// AAPL in 3; MSFT in 2; then singles by weight desc, ties by id
		require.Equal(t, []string{"AAPL", "MSFT", "CCC", "AAA", "BBB", "ZZZ"}, ids)
	})

	t.Run("unique stock count is the union", func(t *testing.T) {
		union := map[string]struct{}{}
		for _, f := range funds {
			for _, h := range f.Holdings {
				union[h.StockIdentifier] = struct{}{}
			}
		}
		require.Equal(t, len(union), len(entries))
	})

	t.Run("breakdown conserves weight", func(t *testing.T) {
		for _, e := range entries {
			sum := 0.0
			for _, fw := range e.PerFundBreakdown {
				sum += fw.Weight
			}
			require.InDelta(t, e.TotalWeightAcrossFunds, sum, 1e-9, e.StockIdentifier)
			require.Equal(t, e.AppearsInCount, len(e.PerFundBreakdown))
			require.InDelta(t, e.TotalWeightAcrossFunds/float64(e.AppearsInCount), e.AverageWeight, 1e-9)
		}
	})

	t.Run("overlapping subset", func(t *testing.T) {
		result := domain.AnalysisResult{StockOverlap: entries}
		require.Equal(t, 2, len(result.OverlappingStocks()))
	})
}

func TestDiversificationScore(t *testing.T) {
	require.Equal(t, float64(100), DiversificationScore(0))
	require.Equal(t, float64(100), DiversificationScore(-5))
	require.Equal(t, float64(0), DiversificationScore(250))
	require.Equal(t, float64(92), DiversificationScore(8))
}
