// Package comprehend classifies review sentiment with Amazon Comprehend.
package comprehend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/smithy-go"
	"github.com/pscheid92/reviewpulse/internal/domain"
)

// LanguageCode is the fixed language tag sent with every review.
const LanguageCode = types.LanguageCodeEn

// API is the subset of *comprehend.Client the classifier uses.
type API interface {
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

// Classifier implements domain.SentimentClassifier.
type Classifier struct {
	api API
}

func New(api API) *Classifier {
	return &Classifier{api: api}
}

// NewFromConfig builds a Classifier backed by a real Comprehend client.
func NewFromConfig(cfg aws.Config) *Classifier {
	return New(comprehend.NewFromConfig(cfg))
}

func (c *Classifier) DetectSentiment(ctx context.Context, text string) (domain.Sentiment, error) {
	out, err := c.api.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: LanguageCode,
	})
	if err != nil {
		if apiErr, ok := errors.AsType[smithy.APIError](err); ok {
			slog.WarnContext(ctx, "Comprehend rejected DetectSentiment", "aws_error_code", apiErr.ErrorCode(), "fault", apiErr.ErrorFault().String())
		}
		return "", fmt.Errorf("detect sentiment: %w", err)
	}

	return fromSentimentType(out.Sentiment)
}

func fromSentimentType(t types.SentimentType) (domain.Sentiment, error) {
	switch t {
	case types.SentimentTypePositive:
		return domain.SentimentPositive, nil
	case types.SentimentTypeNegative:
		return domain.SentimentNegative, nil
	case types.SentimentTypeNeutral:
		return domain.SentimentNeutral, nil
	case types.SentimentTypeMixed:
		return domain.SentimentMixed, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSentiment, t)
	}
}
