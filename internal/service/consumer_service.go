package service

import (
	"context"
	"encoding/json"

	"knowledge-chatbot-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event bus into the audit log. It is
// the only subscriber; losing events on shutdown is acceptable.
type consumerService struct {
	pubSub *gochannel.GoChannel
	topics []string
	log    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, log logger.ILogger, topics ...string) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		topics: topics,
		log:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	for _, topic := range cs.topics {
		messages, err := cs.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				cs.processMessage(topic, msg)
			}
		}(topic, messages)
	}
	return nil
}

func (cs *consumerService) processMessage(topic string, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.log.Error("audit", "Failed to unmarshal event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	cs.log.Info("audit", envelope.Type, map[string]interface{}{
		"topic":       topic,
		"payload":     envelope.Payload,
		"occurred_at": envelope.OccurredAt,
	})
	msg.Ack()
}
