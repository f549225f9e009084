package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer()

	inputs := []string{
		"",
		" ",
		"short",
		strings.Repeat("a", 600),
		"Amazing day! Check out our new launch 🎉 What do you think? #launch #product #news",
		"#a #b #c #d #e #f #g #h #i #j #k #l",
		"??????????",
		"terrible awful horrible disaster, everything failed and we hate it",
		strings.Repeat("🎉", 10),
	}

	for _, in := range inputs {
		score := scorer.Score(in)
		assert.GreaterOrEqual(t, score.Overall, 0, "input %q", in)
		assert.LessOrEqual(t, score.Overall, 100, "input %q", in)
		assert.GreaterOrEqual(t, score.Display, 0.0)
		assert.LessOrEqual(t, score.Display, 10.0)
		assert.Len(t, score.Factors, 6)
	}
}

func TestScoreEmptyText(t *testing.T) {
	scorer := NewScorer()
	score := scorer.Score("")

	assert.Equal(t, SentimentNeutral, score.Sentiment)
	assert.NotEmpty(t, score.Recommendations)
	for _, f := range score.Factors {
		assert.GreaterOrEqual(t, f.Score, 0)
		assert.LessOrEqual(t, f.Score, 100)
	}
}

func TestScoreWellFormedPost(t *testing.T) {
	scorer := NewScorer()

	// 100-300 chars, 3 hashtags, one question, a CTA keyword, two emojis and
	// clearly positive wording should score every factor at its top band.
	text := "We just shipped something wonderful and we could not be happier! 🎉 " +
		"What feature would you love to see next? Check out the link in bio and " +
		"share your thoughts with us 🙌 #launch #product #community"
	require.GreaterOrEqual(t, len([]rune(text)), 100)
	require.LessOrEqual(t, len([]rune(text)), 300)

	score := scorer.Score(text)
	assert.GreaterOrEqual(t, score.Overall, 90)
	assert.Equal(t, SentimentPositive, score.Sentiment)
	assert.Empty(t, score.Recommendations)
}

func TestScoreRecommendationsForWeakFactors(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("ok")
	assert.Contains(t, score.Recommendations, recommendations[FactorHashtags])
	assert.Contains(t, score.Recommendations, recommendations[FactorLength])
	assert.Contains(t, score.Recommendations, recommendations[FactorCTA])
}

func TestFactorBands(t *testing.T) {
	assert.Equal(t, 100, scoreLength(strings.Repeat("x", 150)))
	assert.Equal(t, 40, scoreLength("tiny"))
	assert.Equal(t, 70, scoreLength(strings.Repeat("x", 60)))
	assert.Equal(t, 80, scoreLength(strings.Repeat("x", 400)))
	assert.Equal(t, 60, scoreLength(strings.Repeat("x", 501)))

	assert.Equal(t, 100, scoreHashtags("#a #b #c"))
	assert.Equal(t, 60, scoreHashtags("#a"))
	assert.Equal(t, 70, scoreHashtags("#a #b #c #d #e #f #g #h"))
	assert.Equal(t, 20, scoreHashtags("no tags"))
	assert.Equal(t, 40, scoreHashtags("#1 #2 #3 #4 #5 #6 #7 #8 #9 #10 #11"))

	assert.Equal(t, 100, scoreQuestions("what? why?"))
	assert.Equal(t, 50, scoreQuestions("statement"))
	assert.Equal(t, 60, scoreQuestions("a? b? c?"))

	assert.Equal(t, 100, scoreCTA("Learn more on our site"))
	assert.Equal(t, 100, scoreCTA("LINK IN BIO"))
	assert.Equal(t, 40, scoreCTA("nothing actionable here"))

	assert.Equal(t, 100, scoreEmojis("hi 🎉"))
	assert.Equal(t, 60, scoreEmojis("plain"))
	assert.Equal(t, 80, scoreEmojis("🎉 🙌 🔥 ✨"))
	assert.Equal(t, 50, scoreEmojis("🎉 🙌 🔥 ✨ 💡 🚀"))
}

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range factorWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
