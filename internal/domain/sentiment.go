package domain

import (
	"context"
)

// Sentiment is the polarity label returned by the classifier.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentMixed    Sentiment = "MIXED"
)

func (s Sentiment) IsNegative() bool {
	return s == SentimentNegative
}

// Valid reports whether s is one of the known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	default:
		return false
	}
}

// SentimentClassifier classifies review text. Implementations use a fixed
// language tag.
type SentimentClassifier interface {
	DetectSentiment(ctx context.Context, text string) (Sentiment, error)
}
