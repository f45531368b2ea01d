package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brainmode-be/internal/dto"
	"brainmode-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService puts context events on the in-process bus.
type IPublisherService interface {
	events.Publisher
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(dto.ContextEventMessage{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp().Format(time.RFC3339Nano),
		Data:       event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}
