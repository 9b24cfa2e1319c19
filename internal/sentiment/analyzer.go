package sentiment

import (
	"fmt"
	"strings"

	"github.com/drankou/go-vader/vader"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// Analyzer wraps the VADER intensity analyzer behind domain.Scorer.
// Safe for concurrent use once constructed; PolarityScores only reads the
// lexicon maps.
type Analyzer struct {
	sia *vader.SentimentIntensityAnalyzer
}

// NewAnalyzer loads the VADER lexicons and returns a ready analyzer.
// With empty paths the library falls back to its bundled lexicon lookup.
func NewAnalyzer(lexiconPath, emojiLexiconPath string) (*Analyzer, error) {
	sia := &vader.SentimentIntensityAnalyzer{}

	var err error
	if lexiconPath != "" {
		err = sia.Init(lexiconPath, emojiLexiconPath)
	} else {
		err = sia.Init()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load VADER lexicons: %w", err)
	}

	return &Analyzer{sia: sia}, nil
}

// Score returns the polarity scores for a single text.
// Blank text scores neutral rather than erroring; a single unscorable post
// must not sink a whole run.
func (a *Analyzer) Score(text string) domain.Scores {
	if strings.TrimSpace(text) == "" {
		return domain.NeutralScores()
	}

	polarity := a.sia.PolarityScores(text)
	return domain.Scores{
		Negative: polarity["neg"],
		Neutral:  polarity["neu"],
		Positive: polarity["pos"],
		Compound: polarity["compound"],
	}
}

// ScoreSet scores every post in a cleaned set.
func ScoreSet(scorer domain.Scorer, set domain.PostSet) domain.ScoredSet {
	scores := make([]domain.Scores, len(set.Posts))
	for i, post := range set.Posts {
		scores[i] = scorer.Score(post.Text)
	}
	return domain.ScoredSet{Set: set, Scores: scores}
}
