package domain

type SharedHolding struct {
	StockIdentifier string
	Name            string
	WeightInA       float64
	WeightInB       float64
}

func (s SharedHolding) MinWeight() float64 {
	if s.WeightInA < s.WeightInB {
		return s.WeightInA
	}
	return s.WeightInB
}

type PairwiseOverlap struct {
	FundA             FundRef
	FundB             FundRef
	SharedHoldings    []SharedHolding
	OverlapPercentage float64
}

type FundWeight struct {
	FundIdentifier string
	FundName       string
	Weight         float64
}

type StockOverlapEntry struct {
	StockIdentifier        string
	Name                   string
	AppearsInCount         int
	TotalWeightAcrossFunds float64
	AverageWeight          float64
	PerFundBreakdown       []FundWeight
}

// IsOverlapping is true for stocks held by more than one fund
func (e StockOverlapEntry) IsOverlapping() bool {
	return e.AppearsInCount >= 2
}

type AnalysisSummary struct {
	TotalFunds               int
	AverageOverlapPercentage float64
	TotalUniqueStocks        int
	DiversificationScore     float64
	Band                     DiversificationBand
}

type AnalysisResult struct {
	Funds        []FundSnapshot
	Pairwise     []PairwiseOverlap
	StockOverlap []StockOverlapEntry
	Summary      AnalysisSummary
	// Excluded lists requested funds that could not be resolved
	Excluded []FundFailure
}

// OverlappingStocks returns the entries held by at least two funds,
// preserving sort order
func (r AnalysisResult) OverlappingStocks() []StockOverlapEntry {
	out := []StockOverlapEntry{}
	for _, e := range r.StockOverlap {
		if e.IsOverlapping() {
			out = append(out, e)
		}
	}
	return out
}
