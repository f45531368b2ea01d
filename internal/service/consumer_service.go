package service

import (
	"context"
	"encoding/json"

	"brainmode-be/internal/dto"
	"brainmode-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

const auditModule = "ContextAudit"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes every context event to the audit log.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	audit      logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, audit logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		audit:      audit,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Ack in every case: a broken audit record must not block the bus.
	defer msg.Ack()

	var event dto.ContextEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.audit.Error(auditModule, "Failed to unmarshal context event", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	cs.audit.Info(auditModule, event.Type, map[string]interface{}{
		"occurred_at": event.OccurredAt,
		"data":        event.Data,
	})
}
