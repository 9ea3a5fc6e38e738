package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_CrisisTermsWinOutright(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"in content", "a rough week", "sometimes i think about suicide"},
		{"in title", "want to die", "but i am grateful for this community"},
		{"uppercase", "", "I CANNOT DO THIS, I WANT TO END IT ALL"},
		{"hyphenated", "", "struggling with self-harm again"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := c.Detect(tt.title, tt.content)
			assert.Equal(t, Crisis, res.Sentiment)
			assert.Equal(t, -1.0, res.Score)
		})
	}
}

func TestDetect_LexiconBalance(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	tests := []struct {
		name string
		text string
		want Sentiment
	}{
		{"negative", "i feel hopeless and alone and scared", Negative},
		{"positive", "feeling hopeful and grateful, therapy helped", Positive},
		{"no lexicon hits", "the meeting is on thursday afternoon", Neutral},
		{"balanced", "scared but hopeful", Neutral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := c.Detect("", tt.text)
			assert.Equal(t, tt.want, res.Sentiment)
		})
	}
}

func TestDetect_ScoreBounds(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	res := c.Detect("", "hopeless worthless alone lonely scared miserable")
	assert.Equal(t, Negative, res.Sentiment)
	assert.Equal(t, -1.0, res.Score)

	res = c.Detect("", "happy hopeful grateful proud calm")
	assert.Equal(t, Positive, res.Sentiment)
	assert.Equal(t, 1.0, res.Score)
}

func TestDetect_Deterministic(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	first := c.Detect("rough day", "feeling anxious and exhausted")
	second := c.Detect("rough day", "feeling anxious and exhausted")
	assert.Equal(t, first, second)
}

func TestAnalyze_CollectsFlaggedTerms(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(NewClassifier())

	analysis := a.Analyze("overdose fears", "i keep thinking about an overdose and about suicide", "crisis")
	assert.Equal(t, Crisis, analysis.Tone)
	assert.Contains(t, analysis.FlaggedTerms, "overdose")
	assert.Contains(t, analysis.FlaggedTerms, "suicide")
	// repeated terms are reported once
	assert.Len(t, analysis.FlaggedTerms, 2)
	assert.Positive(t, analysis.WordCount)
}
