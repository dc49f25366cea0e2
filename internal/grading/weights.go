package grading

import (
	"math"

	"github.com/noah-isme/gradebook-api/internal/models"
)

const weightTolerance = 1e-6

// TotalWeight sums every midterm weight and the end-semester weight.
func TotalWeight(cfg models.GradeConfig) float64 {
	total := cfg.EndSemWeight
	for _, w := range cfg.MidtermWeights {
		total += w
	}
	return total
}

// WeightsSumToOne reports whether the weights already add up to 1.
func WeightsSumToOne(cfg models.GradeConfig) bool {
	return math.Abs(TotalWeight(cfg)-1) < weightTolerance
}

// NormalizeWeights rescales the weights to sum to 1, each rounded to two
// decimals. A zero total is treated as 1 so the weights come back unchanged
// apart from rounding.
func NormalizeWeights(cfg models.GradeConfig) models.GradeConfig {
	total := TotalWeight(cfg)
	if total == 0 {
		total = 1
	}
	out := cfg.Clone()
	for i, w := range out.MidtermWeights {
		out.MidtermWeights[i] = round2(w / total)
	}
	out.EndSemWeight = round2(out.EndSemWeight / total)
	return out
}
