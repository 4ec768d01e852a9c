// Package notify announces order events to downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/rs/zerolog"
)

// EventOrderPaid is the event type published when an order is first written.
const EventOrderPaid = "order.paid"

// Publisher sends order notifications.
type Publisher interface {
	PublishOrderPaid(ctx context.Context, order *model.Order) error
}

// OrderEvent is the JSON message body.
type OrderEvent struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	Order      *model.Order `json:"order"`
}

// SNSAPI is the subset of the SNS client used by the publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes order events to an SNS topic.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
	logger   zerolog.Logger
}

// NewSNSPublisher creates a publisher using the default AWS credential chain.
func NewSNSPublisher(ctx context.Context, topicARN, region string, logger zerolog.Logger) (*SNSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return NewSNSPublisherWithClient(sns.NewFromConfig(cfg), topicARN, logger), nil
}

// NewSNSPublisherWithClient creates a publisher around an existing client.
func NewSNSPublisherWithClient(client SNSAPI, topicARN string, logger zerolog.Logger) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
		logger:   logger.With().Str("component", "sns-publisher").Logger(),
	}
}

// PublishOrderPaid publishes an order.paid event. The event type is also set
// as a message attribute for subscription filtering.
func (p *SNSPublisher) PublishOrderPaid(ctx context.Context, order *model.Order) error {
	body, err := json.Marshal(OrderEvent{
		Type:       EventOrderPaid,
		OccurredAt: time.Now().UTC(),
		Order:      order,
	})
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventOrderPaid),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", p.topicARN, err)
	}

	p.logger.Debug().
		Str("order_number", order.OrderNumber).
		Str("message_id", aws.ToString(out.MessageId)).
		Msg("order event published")

	return nil
}

// NopPublisher drops every notification.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPaid(context.Context, *model.Order) error { return nil }
