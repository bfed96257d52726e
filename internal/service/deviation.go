package service

import "stockfolio/internal/models"

// Deviate compares a portfolio total to a fixed baseline. The absolute
// deviation is signed, not an absolute value. A zero baseline is reported as
// ErrDivisionUndefined rather than dividing silently.
func Deviate(total, baseline float64) (models.DeviationStats, error) {
	if baseline == 0 {
		return models.DeviationStats{}, ErrDivisionUndefined
	}
	abs := total - baseline
	return models.DeviationStats{
		AbsoluteDeviation: abs,
		PercentageChange:  (total - baseline) / baseline * 100,
		Direction:         models.Classify(abs),
	}, nil
}
