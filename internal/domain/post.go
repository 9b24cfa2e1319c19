package domain

// --- Model types ---

// Post is a single social-media post about a contestant.
// URL holds the raw url field as loaded; the cleaner reduces it to a host.
type Post struct {
	Date string
	Text string
	URL  string
}

// PostSet is the collection of posts loaded for one contestant.
type PostSet struct {
	Contestant string
	Source     string
	Posts      []Post
}

// Count returns the number of posts in the set.
func (s PostSet) Count() int {
	return len(s.Posts)
}

// Scores holds the polarity scores for a single text.
// Negative, Neutral and Positive are proportions in [0,1];
// Compound is the normalized composite in [-1,1].
type Scores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// NeutralScores is returned when a text cannot be scored.
func NeutralScores() Scores {
	return Scores{Neutral: 1}
}

// ScoredSet pairs a cleaned post set with its per-post scores.
// Scores[i] belongs to Set.Posts[i].
type ScoredSet struct {
	Set    PostSet
	Scores []Scores
}

// SetStats summarizes the compound scores of a scored set.
type SetStats struct {
	Mean          float64
	Median        float64
	StdDev        float64
	Min           float64
	Max           float64
	PositiveRatio float64
	NegativeRatio float64
	NeutralRatio  float64
}

// --- Interfaces ---

// Scorer scores a single text for sentiment polarity.
type Scorer interface {
	Score(text string) Scores
}
