package finance

import "math"

// Trend classifies a prediction against the historical average.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Heuristic tuning. The inflation factor pads historical one-off spend,
// the floor keeps the estimate from collapsing when history is thin.
const (
	oneTimeInflationFactor = 1.1
	oneTimeFloorShare      = 0.2
	trendThreshold         = 0.10

	maxConfidence           = 90
	baseConfidence          = 50
	confidencePerYear       = 15
	defaultConfidence       = 60
	noHistoryNoRecurringPct = 50
)

// Prediction is an advisory spending estimate for one period. Confidence
// is a display heuristic, not a probability, and Trend has no statistical
// grounding; neither should drive any decision logic.
type Prediction struct {
	EstimatedOneTime float64 `json:"estimated_one_time"`
	Total            float64 `json:"total"`
	Confidence       int     `json:"confidence"`
	Trend            Trend   `json:"trend"`
}

// Predict combines a period's recurring total with an estimate of
// non-recurring spend scaled from prior periods. Each element of
// historicalOneTimeTotals is the one-off spend of one past year. History
// is inflated by 10% and floored at 20% of the recurring total, so an
// empty history still yields a usable estimate.
func Predict(recurringTotal float64, historicalOneTimeTotals []float64, recurringCount int) Prediction {
	years := len(historicalOneTimeTotals)

	var avgHistorical float64
	if years > 0 {
		for _, t := range historicalOneTimeTotals {
			avgHistorical += t
		}
		avgHistorical /= float64(years)
	}

	estimatedOneTime := math.Max(avgHistorical*oneTimeInflationFactor, recurringTotal*oneTimeFloorShare)
	total := recurringTotal + estimatedOneTime

	confidence := defaultConfidence
	if years > 0 {
		confidence = baseConfidence + confidencePerYear*years
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
	} else if recurringCount == 0 {
		confidence = noHistoryNoRecurringPct
	}

	trend := TrendStable
	if avgHistorical > 0 {
		change := (total - avgHistorical) / avgHistorical
		if change > trendThreshold {
			trend = TrendUp
		} else if change < -trendThreshold {
			trend = TrendDown
		}
	}

	return Prediction{
		EstimatedOneTime: estimatedOneTime,
		Total:            total,
		Confidence:       confidence,
		Trend:            trend,
	}
}
