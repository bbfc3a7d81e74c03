// Package eventpublisher delivers negative-review notifications to an SNS topic.
package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/pscheid92/reviewpulse/internal/domain"
)

// messageStructureJSON tells SNS that Message is a per-protocol JSON map.
const messageStructureJSON = "json"

// API is the subset of *sns.Client the publisher uses.
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	GetTopicAttributes(ctx context.Context, params *sns.GetTopicAttributesInput, optFns ...func(*sns.Options)) (*sns.GetTopicAttributesOutput, error)
}

// EventPublisher implements domain.Notifier on top of SNS.
type EventPublisher struct {
	api      API
	topicARN string
}

func New(api API, topicARN string) *EventPublisher {
	return &EventPublisher{
		api:      api,
		topicARN: topicARN,
	}
}

func NewFromConfig(cfg aws.Config, topicARN string) *EventPublisher {
	return New(sns.NewFromConfig(cfg), topicARN)
}

// Notify publishes event once. Every subscriber protocol receives the
// "default" entry, which is the event encoded as JSON.
func (ep *EventPublisher) Notify(ctx context.Context, event domain.NotificationEvent) error {
	message, err := encodeMessage(event)
	if err != nil {
		return err
	}

	out, err := ep.api.Publish(ctx, &sns.PublishInput{
		TopicArn:         aws.String(ep.topicARN),
		Message:          aws.String(message),
		MessageStructure: aws.String(messageStructureJSON),
	})
	if err != nil {
		if apiErr, ok := errors.AsType[smithy.APIError](err); ok {
			slog.WarnContext(ctx, "SNS rejected publish", "topic_arn", ep.topicARN, "aws_error_code", apiErr.ErrorCode())
		}
		return fmt.Errorf("publish to %s: %w", ep.topicARN, err)
	}

	slog.DebugContext(ctx, "Published notification", "topic_arn", ep.topicARN, "message_id", aws.ToString(out.MessageId))
	return nil
}

// Ping verifies the topic exists and is reachable with the current credentials.
func (ep *EventPublisher) Ping(ctx context.Context) error {
	if _, err := ep.api.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{TopicArn: aws.String(ep.topicARN)}); err != nil {
		return fmt.Errorf("get topic attributes for %s: %w", ep.topicARN, err)
	}
	return nil
}

func encodeMessage(event domain.NotificationEvent) (string, error) {
	inner, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode notification: %w", err)
	}
	outer, err := json.Marshal(map[string]string{"default": string(inner)})
	if err != nil {
		return "", fmt.Errorf("encode sns envelope: %w", err)
	}
	return string(outer), nil
}
