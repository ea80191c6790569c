package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/stats"
)

func floatPtr(v float64) *float64 { return &v }

func testStats() stats.HemisphereStats {
	return stats.HemisphereStats{
		North: domain.Summary{Count: 2, Mean: 11.25, Std: 1.767767, Min: 10.0, P25: 10.625, P50: 11.25, P75: 11.875, Max: 12.5},
		South: domain.Summary{Count: 2, Mean: 10.25, Std: 1.06066, Min: 9.5, P25: 9.875, P50: 10.25, P75: 10.625, Max: 11.0},
		Eras: domain.EraComparison{
			PastMean:   floatPtr(12.5),
			RecentMean: floatPtr(10.0),
		},
	}
}

func TestNewPromptParams(t *testing.T) {
	params, err := NewPromptParams(testStats())
	require.NoError(t, err)

	// Era means are formatted to exactly two decimals.
	assert.Equal(t, "12.50", params.PastMean)
	assert.Equal(t, "10.00", params.RecentMean)
	assert.Contains(t, params.NorthBlock, "mean     11.250000")
	assert.Contains(t, params.SouthBlock, "mean     10.250000")
}

func TestNewPromptParams_UndefinedEra(t *testing.T) {
	s := testStats()
	s.Eras.RecentMean = nil

	_, err := NewPromptParams(s)
	assert.ErrorIs(t, err, domain.ErrComputation)
}

func TestBuildMessages(t *testing.T) {
	params, err := NewPromptParams(testStats())
	require.NoError(t, err)

	messages := BuildMessages(params)
	require.Len(t, messages, 2)

	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "climate scientist")
	assert.Contains(t, messages[0].Content, "markdown")

	user := messages[1]
	assert.Equal(t, "user", user.Role)

	// The era pair is embedded literally at two decimals.
	assert.Contains(t, user.Content, "Early 5-year average: 12.50")
	assert.Contains(t, user.Content, "Recent 5-year average: 10.00")

	// Both statistics blocks appear verbatim.
	assert.Contains(t, user.Content, params.NorthBlock)
	assert.Contains(t, user.Content, params.SouthBlock)

	// The four required report sections are fixed instructions.
	assert.Contains(t, user.Content, "**Overall trend summary**")
	assert.Contains(t, user.Content, "**Impact of climate change**")
	assert.Contains(t, user.Content, "**Data variability**")
	assert.Contains(t, user.Content, "**Conclusion and recommendations**")
}
