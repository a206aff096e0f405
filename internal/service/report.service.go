package service

import (
	"etfoverlap/internal/domain"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gocarina/gocsv"
)

// ReportService turns serialized reports into human-readable output for
// the cli
type ReportService interface {
	RenderMarkdown(report domain.AnalysisReport) string
	RenderComparisonMarkdown(report domain.ComparisonReport) string
	RenderTerminal(markdown string) (string, error)
	RenderStockOverlapCsv(report domain.AnalysisReport, w io.Writer) error
}

type reportServiceHandler struct {
	// Style is a glamour standard style name, e.g. "dark" or "notty".
	// Empty means detect from the terminal.
	Style    string
	WordWrap int
}

func NewReportService(style string, wordWrap int) ReportService {
	if wordWrap <= 0 {
		wordWrap = 100
	}
	return reportServiceHandler{
		Style:    style,
		WordWrap: wordWrap,
	}
}

const topHoldingsShown = 5

func (h reportServiceHandler) RenderMarkdown(report domain.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Multi-ETF Overlap Analysis\n\n")

	fmt.Fprint(&b, "## ETFs in Analysis\n\n")
	for i, etf := range report.Etfs {
		fmt.Fprintf(&b, "%d. **%s** (%s), %d holdings\n", i+1, etf.Name, etf.Isin, etf.TotalHoldings)
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Unique Stocks | %d |\n", report.Summary.TotalUniqueStocks)
	fmt.Fprintf(&b, "| Average Overlap | %.2f%% |\n", report.Summary.AverageOverlapPercentage)
	fmt.Fprintf(&b, "| Diversification Score | %.1f/100 |\n", report.Summary.DiversificationScore)
	fmt.Fprintf(&b, "| Band | %s |\n\n", report.Summary.DiversificationBand)

	fmt.Fprint(&b, "## Stocks With Highest Concentration Risk\n\n")
	concentrated := 0
	for _, s := range report.StockOverlapAnalysis {
		if s.AppearsInEtfs < 2 {
			continue
		}
		if concentrated == 0 {
			fmt.Fprintln(&b, "| ISIN | Name | ETF Count | Total Weight | Avg Weight/ETF |")
			fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
		}
		concentrated++
		fmt.Fprintf(&b, "| %s | %s | %d/%d | %.2f%% | %.2f%% |\n",
			s.Isin,
			escapeCell(s.Name),
			s.AppearsInEtfs,
			len(report.Etfs),
			s.TotalWeightAcrossAllEtfs,
			s.AverageWeightPerEtf,
		)
	}
	if concentrated == 0 {
		fmt.Fprint(&b, "No stock is held by more than one ETF.\n")
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Pairwise Overlap\n\n")
	fmt.Fprintln(&b, "| ETF 1 | ETF 2 | Overlap | Common Holdings |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, p := range report.PairwiseComparisons {
		fmt.Fprintf(&b, "| %s | %s | %.2f%% | %d |\n", p.Etf1Isin, p.Etf2Isin, p.OverlapPercentage, p.CommonHoldingsCount)
	}
	fmt.Fprintln(&b)

	writeRecommendations(&b, domain.DiversificationBand(report.Summary.DiversificationBand))

	if report.Warnings != nil {
		fmt.Fprint(&b, "## Warnings\n\n")
		fmt.Fprintf(&b, "%s\n\n", report.Warnings.Message)
		for _, f := range report.Warnings.FailedIsins {
			fmt.Fprintf(&b, "- %s (%s): %s\n", f.Isin, f.ErrorType, f.Error)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

func (h reportServiceHandler) RenderComparisonMarkdown(report domain.ComparisonReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# ETF Overlap Analysis\n\n")

	for i, etf := range []domain.FundReport{report.Etf1, report.Etf2} {
		fmt.Fprintf(&b, "## ETF %d: %s (%s)\n\n", i+1, etf.Name, etf.Isin)
		fmt.Fprintf(&b, "Holdings: %d\n\n", etf.TotalHoldings)

		top := append([]domain.HoldingReport{}, etf.Holdings...)
		sort.SliceStable(top, func(i, j int) bool { return top[i].Weight > top[j].Weight })
		if len(top) > topHoldingsShown {
			top = top[:topHoldingsShown]
		}
		if len(top) > 0 {
			fmt.Fprint(&b, "Top holdings:\n\n")
			for _, holding := range top {
				fmt.Fprintf(&b, "- %s: %.2f%% (%s)\n", holding.Name, holding.Weight, holding.Isin)
			}
			fmt.Fprintln(&b)
		}
	}

	common := report.Summary.CommonHoldingsCount
	fmt.Fprint(&b, "## Overlap Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Overlap | %.2f%% |\n", report.Summary.TotalOverlapPercentage)
	fmt.Fprintf(&b, "| Diversification Score | %.1f/100 |\n", report.Summary.DiversificationScore)
	fmt.Fprintf(&b, "| Common Holdings | %d |\n", common)
	fmt.Fprintf(&b, "| ETF 1 Unique Holdings | %d |\n", report.Etf1.TotalHoldings-common)
	fmt.Fprintf(&b, "| ETF 2 Unique Holdings | %d |\n\n", report.Etf2.TotalHoldings-common)

	if common > 0 {
		fmt.Fprint(&b, "## Common Holdings\n\n")
		fmt.Fprintln(&b, "| ISIN | Name | Weight | ETF 1 | ETF 2 |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
		holdings := append([]domain.CommonHoldingReport{}, report.CommonHoldings...)
		sort.SliceStable(holdings, func(i, j int) bool { return holdings[i].Weight > holdings[j].Weight })
		for _, c := range holdings {
			fmt.Fprintf(&b, "| %s | %s | %.2f%% | %.2f%% | %.2f%% |\n", c.Isin, escapeCell(c.Name), c.Weight, c.Etf1Weight, c.Etf2Weight)
		}
		fmt.Fprintln(&b)
	}

	writeRecommendations(&b, domain.DiversificationBand(report.Summary.DiversificationBand))

	return b.String()
}

func writeRecommendations(b *strings.Builder, band domain.DiversificationBand) {
	fmt.Fprint(b, "## Recommendations\n\n")
	for _, r := range band.Recommendations() {
		fmt.Fprintf(b, "- %s\n", r)
	}
	fmt.Fprintln(b)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func (h reportServiceHandler) RenderTerminal(markdown string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if h.Style != "" {
		styleOpt = glamour.WithStandardStyle(h.Style)
	}
	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(h.WordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

type stockOverlapCsvRow struct {
	Isin          string  `csv:"isin"`
	Name          string  `csv:"name"`
	AppearsInEtfs int     `csv:"appears_in_etfs"`
	TotalEtfs     int     `csv:"total_etfs"`
	TotalWeight   float64 `csv:"total_weight_across_all_etfs"`
	AverageWeight float64 `csv:"average_weight_per_etf"`
	EtfIsins      string  `csv:"etf_isins"`
}

// RenderStockOverlapCsv writes one row per stock in report order
func (h reportServiceHandler) RenderStockOverlapCsv(report domain.AnalysisReport, w io.Writer) error {
	rows := make([]stockOverlapCsvRow, 0, len(report.StockOverlapAnalysis))
	for _, s := range report.StockOverlapAnalysis {
		etfIsins := make([]string, 0, len(s.EtfBreakdown))
		for _, e := range s.EtfBreakdown {
			etfIsins = append(etfIsins, e.EtfIsin)
		}
		rows = append(rows, stockOverlapCsvRow{
			Isin:          s.Isin,
			Name:          s.Name,
			AppearsInEtfs: s.AppearsInEtfs,
			TotalEtfs:     len(report.Etfs),
			TotalWeight:   s.TotalWeightAcrossAllEtfs,
			AverageWeight: s.AverageWeightPerEtf,
			EtfIsins:      strings.Join(etfIsins, ";"),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write stock overlap csv: %w", err)
	}
	return nil
}
