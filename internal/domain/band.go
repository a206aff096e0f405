package domain

type DiversificationBand string

const (
	DiversificationBand_Excellent DiversificationBand = "excellent"
	DiversificationBand_Good      DiversificationBand = "good"
	DiversificationBand_Moderate  DiversificationBand = "moderate"
	DiversificationBand_Poor      DiversificationBand = "poor"
)

// BandForScore buckets a score in [0,100]: [80,100] excellent, [60,80)
// good, [40,60) moderate, [0,40) poor
func BandForScore(score float64) DiversificationBand {
	switch {
	case score >= 80:
		return DiversificationBand_Excellent
	case score >= 60:
		return DiversificationBand_Good
	case score >= 40:
		return DiversificationBand_Moderate
	}
	return DiversificationBand_Poor
}

func (b DiversificationBand) Recommendations() []string {
	switch b {
	case DiversificationBand_Excellent:
		return []string{
			"Excellent diversification! These ETFs have minimal overlap.",
			"Consider holding them together for broad market exposure.",
		}
	case DiversificationBand_Good:
		return []string{
			"Good diversification with some overlap.",
			"Monitor the common holdings for concentration risk.",
		}
	case DiversificationBand_Moderate:
		return []string{
			"Moderate overlap detected.",
			"Consider reducing position size in one of these ETFs.",
			"Look for alternative ETFs with less overlap.",
		}
	}
	return []string{
		"High overlap - poor diversification!",
		"These ETFs are essentially investing in the same stocks.",
		"Strongly consider holding only one of these ETFs.",
	}
}
