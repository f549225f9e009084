package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

// Factor names reported in score breakdowns.
const (
	FactorLength    = "length"
	FactorHashtags  = "hashtags"
	FactorQuestions = "questions"
	FactorCTA       = "cta"
	FactorEmojis    = "emojis"
	FactorSentiment = "sentiment"
)

var factorWeights = map[string]float64{
	FactorLength:    0.15,
	FactorHashtags:  0.15,
	FactorQuestions: 0.20,
	FactorCTA:       0.20,
	FactorEmojis:    0.10,
	FactorSentiment: 0.20,
}

// FactorScore is one scored dimension of a post, on a 0-100 scale.
type FactorScore struct {
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

// EngagementScore is the weighted result for a post. Overall is 0-100;
// Display is the same value on a 0-10 scale for UI surfaces.
type EngagementScore struct {
	Overall         int            `json:"overall"`
	Display         float64        `json:"display"`
	Sentiment       SentimentLabel `json:"sentiment"`
	Compound        float64        `json:"compound"`
	Factors         []FactorScore  `json:"factors"`
	Recommendations []string       `json:"recommendations"`
}

var (
	hashtagPattern  = regexp.MustCompile(`#\w+`)
	questionPattern = regexp.MustCompile(`\?`)
)

var ctaKeywords = []string{
	"click", "visit", "check out", "learn more", "shop now", "get started",
	"sign up", "subscribe", "follow", "share", "comment", "tag", "dm",
	"swipe up", "link in bio", "download", "join", "discover",
}

var recommendations = map[string]string{
	FactorLength:    "Aim for 100-300 characters, long enough to say something and short enough to hold attention",
	FactorHashtags:  "Use 3-7 relevant hashtags to improve discoverability",
	FactorQuestions: "Ask a question to invite replies",
	FactorCTA:       "Add a call to action such as 'learn more' or 'share your thoughts'",
	FactorEmojis:    "Add 1-3 emojis to make the post feel more approachable",
	FactorSentiment: "A more positive tone tends to earn more engagement",
}

// Scorer computes engagement scores for post text. Safe for concurrent use.
type Scorer struct {
	sentiment *SentimentAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{sentiment: NewSentimentAnalyzer()}
}

// Score evaluates text across six weighted factors and returns the combined
// result clamped to [0, 100]. Empty text is valid input and scores low.
func (s *Scorer) Score(text string) EngagementScore {
	compound, label := s.sentiment.Analyze(text)

	factors := []FactorScore{
		{Name: FactorLength, Score: scoreLength(text)},
		{Name: FactorHashtags, Score: scoreHashtags(text)},
		{Name: FactorQuestions, Score: scoreQuestions(text)},
		{Name: FactorCTA, Score: scoreCTA(text)},
		{Name: FactorEmojis, Score: scoreEmojis(text)},
		{Name: FactorSentiment, Score: scoreSentiment(compound, label)},
	}

	var weighted float64
	var recs []string
	for i := range factors {
		factors[i].Weight = factorWeights[factors[i].Name]
		weighted += float64(factors[i].Score) * factors[i].Weight
		if factors[i].Score < 70 {
			recs = append(recs, recommendations[factors[i].Name])
		}
	}

	overall := clamp(int(math.Round(weighted)))

	return EngagementScore{
		Overall:         overall,
		Display:         DisplayScore(overall),
		Sentiment:       label,
		Compound:        compound,
		Factors:         factors,
		Recommendations: recs,
	}
}

// DisplayScore converts a 0-100 score to the 0-10 scale, one decimal place.
func DisplayScore(overall int) float64 {
	return math.Round(float64(overall)) / 10
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func scoreLength(text string) int {
	n := len([]rune(text))
	switch {
	case n >= 100 && n <= 300:
		return 100
	case n < 50:
		return 40
	case n < 100:
		return 70
	case n <= 500:
		return 80
	default:
		return 60
	}
}

func scoreHashtags(text string) int {
	n := len(hashtagPattern.FindAllString(text, -1))
	switch {
	case n >= 3 && n <= 7:
		return 100
	case n >= 1 && n <= 2:
		return 60
	case n >= 8 && n <= 10:
		return 70
	case n == 0:
		return 20
	default:
		return 40
	}
}

func scoreQuestions(text string) int {
	n := len(questionPattern.FindAllString(text, -1))
	switch {
	case n >= 1 && n <= 2:
		return 100
	case n == 0:
		return 50
	default:
		return 60
	}
}

func scoreCTA(text string) int {
	lower := strings.ToLower(text)
	for _, kw := range ctaKeywords {
		if strings.Contains(lower, kw) {
			return 100
		}
	}
	return 40
}

func scoreEmojis(text string) int {
	n := len(gomoji.FindAll(text))
	switch {
	case n >= 1 && n <= 3:
		return 100
	case n == 0:
		return 60
	case n <= 5:
		return 80
	default:
		return 50
	}
}

func scoreSentiment(compound float64, label SentimentLabel) int {
	switch label {
	case SentimentPositive:
		return clamp(int(math.Min(100, 60+compound*40)))
	case SentimentNegative:
		return clamp(int(math.Max(40, 60+compound*20)))
	default:
		return 70
	}
}
