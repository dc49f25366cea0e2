package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/gradebook-api/internal/models"
)

func TestTotalWeight(t *testing.T) {
	assert.InDelta(t, 1.0, TotalWeight(models.DefaultGradeConfig()), delta)
	assert.Equal(t, 0.0, TotalWeight(models.GradeConfig{}))
	assert.True(t, WeightsSumToOne(models.DefaultGradeConfig()))
	assert.False(t, WeightsSumToOne(models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 3}))
}

func TestNormalizeWeights(t *testing.T) {
	in := models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 3}
	out := NormalizeWeights(in)
	assert.Equal(t, []float64{0.2, 0.2}, out.MidtermWeights)
	assert.Equal(t, 0.6, out.EndSemWeight)
	assert.Equal(t, []float64{1, 1}, in.MidtermWeights)
}

func TestNormalizeWeightsRoundsToTwoDecimals(t *testing.T) {
	out := NormalizeWeights(models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 1})
	assert.Equal(t, []float64{0.33, 0.33}, out.MidtermWeights)
	assert.Equal(t, 0.33, out.EndSemWeight)
}

func TestNormalizeWeightsZeroTotal(t *testing.T) {
	out := NormalizeWeights(models.GradeConfig{MidtermWeights: []float64{0, 0}, EndSemWeight: 0})
	assert.Equal(t, []float64{0, 0}, out.MidtermWeights)
	assert.Equal(t, 0.0, out.EndSemWeight)
}
