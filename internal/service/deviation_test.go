package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/internal/models"
)

func TestDeviate(t *testing.T) {
	d, err := Deviate(25000, 20000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, d.AbsoluteDeviation)
	assert.Equal(t, 25.0, d.PercentageChange)
	assert.Equal(t, models.Positive, d.Direction)

	// Signed, not an absolute value.
	d, err = Deviate(15000, 20000)
	require.NoError(t, err)
	assert.Equal(t, -5000.0, d.AbsoluteDeviation)
	assert.Equal(t, -25.0, d.PercentageChange)
	assert.Equal(t, models.Negative, d.Direction)

	d, err = Deviate(20000, 20000)
	require.NoError(t, err)
	assert.Zero(t, d.AbsoluteDeviation)
	assert.Zero(t, d.PercentageChange)
	assert.Equal(t, models.Neutral, d.Direction)
}

func TestDeviate_ZeroBaseline(t *testing.T) {
	_, err := Deviate(100, 0)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, models.Positive, models.Classify(0.01))
	assert.Equal(t, models.Negative, models.Classify(-0.01))
	assert.Equal(t, models.Neutral, models.Classify(0))
}
