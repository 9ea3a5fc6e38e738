package sentiment

import (
	"strings"

	"solace/internal/models"
)

// Analysis is the auxiliary per-post analysis shown in moderator views.
type Analysis struct {
	Category     models.Category `json:"category"`
	WordCount    int             `json:"word_count"`
	Tone         Sentiment       `json:"tone"`
	Score        float64         `json:"score"`
	FlaggedTerms []string        `json:"flagged_terms"`
}

// Analyzer produces Analysis values from raw post text.
type Analyzer struct {
	classifier *Classifier
}

// NewAnalyzer returns an Analyzer backed by the given classifier.
func NewAnalyzer(classifier *Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Analyze classifies the text and collects any crisis terms it contains.
// Each flagged term is reported once regardless of how often it occurs.
func (a *Analyzer) Analyze(title, content string, category models.Category) Analysis {
	text := strings.ToLower(title + " " + content)

	var flagged []string
	for _, term := range crisisTerms {
		if strings.Contains(text, term) {
			flagged = append(flagged, term)
		}
	}

	res := a.classifier.Detect(title, content)
	return Analysis{
		Category:     category,
		WordCount:    len(strings.Fields(text)),
		Tone:         res.Sentiment,
		Score:        res.Score,
		FlaggedTerms: flagged,
	}
}
