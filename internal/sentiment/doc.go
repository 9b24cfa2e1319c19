// Package sentiment scores post text for polarity.
//
// Scoring is delegated to the VADER lexicon analyzer, which handles the
// social-media register (slang, emphasis capitalization, emoticons, emoji)
// without any training step. This package wraps it behind domain.Scorer and
// adds per-set descriptive statistics.
package sentiment
