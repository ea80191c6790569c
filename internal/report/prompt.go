// Package report turns aggregated sea ice statistics into a chat-completion
// prompt and requests a prose analysis report from a remote model.
package report

import (
	"fmt"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/stats"
)

const systemPrompt = "You are a renowned climate scientist and data analyst. " +
	"Based on the data you are given, write a clear and insightful analysis " +
	"report in English, formatted as markdown."

const userPromptTemplate = `The following is a summary of sea ice extent data.

[Data Summary]
1. Northern hemisphere descriptive statistics:
%s

2. Southern hemisphere descriptive statistics:
%s

3. Northern hemisphere change over time:
- Early 5-year average: %s
- Recent 5-year average: %s

[Request]
Based on this data, write an analysis report covering:
1. **Overall trend summary**: differences between the northern and southern hemispheres
2. **Impact of climate change**: what the decline in northern hemisphere data implies
3. **Data variability**: interpretation of the gap between maximum and minimum values
4. **Conclusion and recommendations**

Use professional terminology, but explain it so a non-expert can follow.`

// PromptParams is the explicit contract between the aggregator's output and
// the prompt template. Every field is pre-rendered text: a front end that
// wants different statistics only has to produce these four strings.
type PromptParams struct {
	NorthBlock string // Summary.Render() for the north hemisphere
	SouthBlock string // Summary.Render() for the south hemisphere
	PastMean   string // early 5-year north mean, two decimals
	RecentMean string // recent 5-year north mean, two decimals
}

// NewPromptParams renders hemisphere statistics into prompt parameters.
// It fails when either era window is empty, so an undefined mean can never
// be formatted into the prompt as "NaN".
func NewPromptParams(s stats.HemisphereStats) (PromptParams, error) {
	if !s.Eras.Defined() {
		return PromptParams{}, fmt.Errorf("era comparison undefined: %w", domain.ErrComputation)
	}
	return PromptParams{
		NorthBlock: s.North.Render(),
		SouthBlock: s.South.Render(),
		PastMean:   fmt.Sprintf("%.2f", *s.Eras.PastMean),
		RecentMean: fmt.Sprintf("%.2f", *s.Eras.RecentMean),
	}, nil
}

// BuildMessages assembles the fixed system persona and the user prompt
// embedding the statistics blocks and the four required report sections.
func BuildMessages(p PromptParams) []domain.ChatMessage {
	user := fmt.Sprintf(userPromptTemplate, p.NorthBlock, p.SouthBlock, p.PastMean, p.RecentMean)
	return []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}
