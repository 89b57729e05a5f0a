package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"studyvault-be/internal/dto"
)

// OutlineRegenerator rebuilds the course aggregate; satisfied by the
// outline aggregator wired through the course service.
type OutlineRegenerator interface {
	Regenerate(ctx context.Context, courseId uuid.UUID) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the outline-regeneration topic so aggregate
// rebuilds happen off the ingestion request path.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	regenerator OutlineRegenerator
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	regenerator OutlineRegenerator,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		regenerator: regenerator,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RegenerateOutlineMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Regenerating outline for CourseId: %s", payload.CourseId)

	if err := cs.regenerator.Regenerate(ctx, payload.CourseId); err != nil {
		log.Printf("[ERROR] Failed to regenerate outline for course %s: %v", payload.CourseId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Course outline regenerated for CourseId: %s", payload.CourseId)
	msg.Ack()
}
