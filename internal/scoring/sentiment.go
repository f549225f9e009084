package scoring

import govader "github.com/jonreiter/govader"

// SentimentLabel classifies the overall tone of a post.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentAnalyzer wraps a lexicon analyzer. The zero value is not usable;
// construct with NewSentimentAnalyzer.
type SentimentAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Analyze returns the compound polarity in [-1, 1] and its label. Compound
// zero (including empty input) maps to neutral.
func (s *SentimentAnalyzer) Analyze(text string) (float64, SentimentLabel) {
	scores := s.analyzer.PolarityScores(text)
	compound := scores.Compound

	switch {
	case compound > 0:
		return compound, SentimentPositive
	case compound < 0:
		return compound, SentimentNegative
	default:
		return compound, SentimentNeutral
	}
}
