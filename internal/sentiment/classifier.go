// Package sentiment provides a deterministic lexicon-based sentiment
// classifier. The escalation engine consumes it as an opaque capability
// through an interface; nothing here attempts real natural-language
// understanding.
package sentiment

import "strings"

// Sentiment is the coarse class assigned to a piece of text.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
	Crisis   Sentiment = "crisis"
)

// Result pairs a sentiment class with a score in [-1, 1].
type Result struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
}

// crisisTerms short-circuit classification: any hit classifies the whole
// text as crisis regardless of surrounding tone.
var crisisTerms = []string{
	"kill myself",
	"suicide",
	"suicidal",
	"end my life",
	"want to die",
	"end it all",
	"self-harm",
	"self harm",
	"hurt myself",
	"no reason to live",
	"better off dead",
	"overdose",
}

var negativeTerms = []string{
	"hopeless", "worthless", "alone", "lonely", "scared", "afraid",
	"anxious", "anxiety", "depressed", "depression", "panic", "crying",
	"cry", "hate", "angry", "hurt", "pain", "awful", "terrible",
	"miserable", "desperate", "exhausted", "overwhelmed", "ashamed",
	"guilty", "numb", "empty", "trapped", "failing", "failure",
	"broken", "abused", "bullied", "unsafe",
}

var positiveTerms = []string{
	"happy", "hopeful", "better", "grateful", "thankful", "proud",
	"calm", "relieved", "excited", "improving", "support", "supported",
	"helped", "love", "loved", "safe", "progress", "recovering",
	"confident", "encouraged",
}

// Classifier scores text against fixed lexicons.
type Classifier struct{}

// NewClassifier returns a lexicon-based classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Detect classifies the combined title and content. Crisis terms win
// outright with score -1; otherwise the score is the normalized balance of
// positive and negative lexicon hits.
func (c *Classifier) Detect(title, content string) Result {
	text := strings.ToLower(title + " " + content)

	for _, term := range crisisTerms {
		if strings.Contains(text, term) {
			return Result{Sentiment: Crisis, Score: -1.0}
		}
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})

	var pos, neg int
	for _, w := range words {
		if containsWord(positiveTerms, w) {
			pos++
		}
		if containsWord(negativeTerms, w) {
			neg++
		}
	}

	if pos+neg == 0 {
		return Result{Sentiment: Neutral, Score: 0}
	}

	score := float64(pos-neg) / float64(pos+neg)
	switch {
	case score > 0.2:
		return Result{Sentiment: Positive, Score: score}
	case score < -0.2:
		return Result{Sentiment: Negative, Score: score}
	default:
		return Result{Sentiment: Neutral, Score: score}
	}
}

func containsWord(terms []string, w string) bool {
	for _, t := range terms {
		if t == w {
			return true
		}
	}
	return false
}
