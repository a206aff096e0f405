package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// everything below is the serialized contract consumed by the api and cli.
// field names are stable; do not rename without bumping consumers.

type HoldingReport struct {
	Isin   string  `json:"isin"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type FundReport struct {
	Isin              string          `json:"isin"`
	Name              string          `json:"name"`
	TotalHoldings     int             `json:"total_holdings"`
	HoldingsAvailable bool            `json:"holdings_available"`
	Holdings          []HoldingReport `json:"holdings"`
}

type SummaryReport struct {
	TotalFunds int `json:"total_funds"`
	// TotalEtfs mirrors TotalFunds under the legacy key
	TotalEtfs                int     `json:"total_etfs"`
	AverageOverlapPercentage float64 `json:"average_overlap_percentage"`
	TotalUniqueStocks        int     `json:"total_unique_stocks"`
	DiversificationScore     float64 `json:"diversification_score"`
	DiversificationBand      string  `json:"diversification_band"`
}

type EtfBreakdownReport struct {
	EtfIsin string  `json:"etf_isin"`
	EtfName string  `json:"etf_name"`
	Weight  float64 `json:"weight"`
}

type StockOverlapReport struct {
	Isin                     string               `json:"isin"`
	Name                     string               `json:"name"`
	AppearsInEtfs            int                  `json:"appears_in_etfs"`
	TotalWeightAcrossAllEtfs float64              `json:"total_weight_across_all_etfs"`
	AverageWeightPerEtf      float64              `json:"average_weight_per_etf"`
	EtfBreakdown             []EtfBreakdownReport `json:"etf_breakdown"`
}

type CommonHoldingReport struct {
	Isin       string  `json:"isin"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Etf1Weight float64 `json:"etf1_weight"`
	Etf2Weight float64 `json:"etf2_weight"`
}

type PairwiseReport struct {
	Etf1Isin            string                `json:"etf1_isin"`
	Etf2Isin            string                `json:"etf2_isin"`
	OverlapPercentage   float64               `json:"overlap_percentage"`
	CommonHoldingsCount int                   `json:"common_holdings_count"`
	CommonHoldings      []CommonHoldingReport `json:"common_holdings"`
}

type FailedIsinReport struct {
	Isin      string `json:"isin"`
	ErrorType string `json:"error_type"`
	Error     string `json:"error"`
}

type WarningsReport struct {
	FailedIsins []FailedIsinReport `json:"failed_isins"`
	Message     string             `json:"message"`
}

type AnalysisReport struct {
	Etfs                 []FundReport         `json:"etfs"`
	Summary              SummaryReport        `json:"summary"`
	StockOverlapAnalysis []StockOverlapReport `json:"stock_overlap_analysis"`
	PairwiseComparisons  []PairwiseReport     `json:"pairwise_comparisons"`
	Warnings             *WarningsReport      `json:"warnings,omitempty"`
}

type ComparisonSummaryReport struct {
	TotalOverlapPercentage float64 `json:"total_overlap_percentage"`
	DiversificationScore   float64 `json:"diversification_score"`
	DiversificationBand    string  `json:"diversification_band"`
	CommonHoldingsCount    int     `json:"common_holdings_count"`
}

type ComparisonReport struct {
	Etf1           FundReport              `json:"etf1"`
	Etf2           FundReport              `json:"etf2"`
	Summary        ComparisonSummaryReport `json:"summary"`
	CommonHoldings []CommonHoldingReport   `json:"common_holdings"`
}

type ErrorReport struct {
	Error           string             `json:"error"`
	ErrorType       string             `json:"error_type"`
	Status          string             `json:"status"`
	FailedIsins     []FailedIsinReport `json:"failed_isins,omitempty"`
	ValidIsinsCount *int               `json:"valid_isins_count,omitempty"`
}

// Round2 is the only place weights lose precision
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func NewAnalysisReport(result AnalysisResult) AnalysisReport {
	out := AnalysisReport{
		Etfs: make([]FundReport, 0, len(result.Funds)),
		Summary: SummaryReport{
			TotalFunds:               result.Summary.TotalFunds,
			TotalEtfs:                result.Summary.TotalFunds,
			AverageOverlapPercentage: Round2(result.Summary.AverageOverlapPercentage),
			TotalUniqueStocks:        result.Summary.TotalUniqueStocks,
			DiversificationScore:     Round2(result.Summary.DiversificationScore),
			DiversificationBand:      string(result.Summary.Band),
		},
		StockOverlapAnalysis: make([]StockOverlapReport, 0, len(result.StockOverlap)),
		PairwiseComparisons:  make([]PairwiseReport, 0, len(result.Pairwise)),
	}

	for _, f := range result.Funds {
		out.Etfs = append(out.Etfs, newFundReport(f))
	}

	for _, e := range result.StockOverlap {
		breakdown := make([]EtfBreakdownReport, 0, len(e.PerFundBreakdown))
		for _, fw := range e.PerFundBreakdown {
			breakdown = append(breakdown, EtfBreakdownReport{
				EtfIsin: fw.FundIdentifier,
				EtfName: fw.FundName,
				Weight:  Round2(fw.Weight),
			})
		}
		out.StockOverlapAnalysis = append(out.StockOverlapAnalysis, StockOverlapReport{
			Isin:                     e.StockIdentifier,
			Name:                     e.Name,
			AppearsInEtfs:            e.AppearsInCount,
			TotalWeightAcrossAllEtfs: Round2(e.TotalWeightAcrossFunds),
			AverageWeightPerEtf:      Round2(e.AverageWeight),
			EtfBreakdown:             breakdown,
		})
	}

	for _, p := range result.Pairwise {
		common := newCommonHoldingReports(p.SharedHoldings)
		out.PairwiseComparisons = append(out.PairwiseComparisons, PairwiseReport{
			Etf1Isin:            p.FundA.FundIdentifier,
			Etf2Isin:            p.FundB.FundIdentifier,
			OverlapPercentage:   Round2(p.OverlapPercentage),
			CommonHoldingsCount: len(common),
			CommonHoldings:      common,
		})
	}

	if len(result.Excluded) > 0 {
		out.Warnings = &WarningsReport{
			FailedIsins: newFailedIsinReports(result.Excluded),
			Message: fmt.Sprintf(
				"%d ETF(s) could not be analyzed but analysis continued with %d valid ETF(s)",
				len(result.Excluded),
				len(result.Funds),
			),
		}
	}

	return out
}

// NewComparisonReport renders the two-fund view. It expects exactly one
// pairwise result.
func NewComparisonReport(result AnalysisResult) (*ComparisonReport, error) {
	if len(result.Funds) != 2 || len(result.Pairwise) != 1 {
		return nil, fmt.Errorf("comparison requires exactly 2 funds, got %d", len(result.Funds))
	}
	pair := result.Pairwise[0]
	common := newCommonHoldingReports(pair.SharedHoldings)

	return &ComparisonReport{
		Etf1: newFundReport(result.Funds[0]),
		Etf2: newFundReport(result.Funds[1]),
		Summary: ComparisonSummaryReport{
			TotalOverlapPercentage: Round2(pair.OverlapPercentage),
			DiversificationScore:   Round2(result.Summary.DiversificationScore),
			DiversificationBand:    string(result.Summary.Band),
			CommonHoldingsCount:    len(common),
		},
		CommonHoldings: common,
	}, nil
}

func NewErrorReport(err error) ErrorReport {
	out := ErrorReport{
		Error:     err.Error(),
		ErrorType: ErrorType(err),
		Status:    "failed",
	}

	var insufficient *InsufficientInputError
	if errors.As(err, &insufficient) {
		out.FailedIsins = newFailedIsinReports(insufficient.Failed)
		resolved := insufficient.Resolved
		out.ValidIsinsCount = &resolved
	}

	return out
}

func newFundReport(f FundSnapshot) FundReport {
	holdings := make([]HoldingReport, 0, len(f.Holdings))
	for _, h := range f.Holdings {
		holdings = append(holdings, HoldingReport{
			Isin:   h.StockIdentifier,
			Name:   h.Name,
			Weight: Round2(h.Weight),
		})
	}
	return FundReport{
		Isin:              f.FundIdentifier,
		Name:              f.FundName,
		TotalHoldings:     len(f.Holdings),
		HoldingsAvailable: f.HoldingsAvailable,
		Holdings:          holdings,
	}
}

func newCommonHoldingReports(shared []SharedHolding) []CommonHoldingReport {
	out := make([]CommonHoldingReport, 0, len(shared))
	for _, s := range shared {
		out = append(out, CommonHoldingReport{
			Isin:       s.StockIdentifier,
			Name:       s.Name,
			Weight:     Round2(s.MinWeight()),
			Etf1Weight: Round2(s.WeightInA),
			Etf2Weight: Round2(s.WeightInB),
		})
	}
	return out
}

func newFailedIsinReports(failures []FundFailure) []FailedIsinReport {
	out := make([]FailedIsinReport, 0, len(failures))
	for _, f := range failures {
		out = append(out, FailedIsinReport{
			Isin:      f.Identifier,
			ErrorType: ErrorType(f.Err),
			Error:     f.Err.Error(),
		})
	}
	return out
}
