package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Render(t *testing.T) {
	s := Summary{
		Count: 2,
		Mean:  11.25,
		Std:   1.767767,
		Min:   10.0,
		P25:   10.625,
		P50:   11.25,
		P75:   11.875,
		Max:   12.5,
	}

	block := s.Render()
	lines := strings.Split(block, "\n")
	assert.Len(t, lines, 8)

	// The rendering is a display contract the report prompt depends on.
	assert.Equal(t, "count            2", lines[0])
	assert.Equal(t, "mean     11.250000", lines[1])
	assert.Equal(t, "min      10.000000", lines[3])
	assert.Equal(t, "max      12.500000", lines[7])
	assert.Contains(t, block, "25%")
	assert.Contains(t, block, "75%")
	assert.False(t, strings.HasSuffix(block, "\n"))
}

func TestEraComparison_Defined(t *testing.T) {
	v := 12.5
	assert.True(t, EraComparison{PastMean: &v, RecentMean: &v}.Defined())
	assert.False(t, EraComparison{PastMean: &v}.Defined())
	assert.False(t, EraComparison{}.Defined())
}
