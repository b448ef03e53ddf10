// FILE: internal/service/consumer_service.go
// PURPOSE: Persist and forward query audit records published by the assistant

package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/datatypes"

	"ai-docassist-be/internal/dto"
	"ai-docassist-be/internal/model"
	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/internal/repository/contract"
	"ai-docassist-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventPublisher forwards audit events to an external bus
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	queryLogs     contract.QueryLogRepository
	natsPublisher EventPublisher
	log           logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	queryLogs contract.QueryLogRepository,
	natsPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		queryLogs:     queryLogs,
		natsPublisher: natsPublisher,
		log:           log,
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
	var payload dto.QueryAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal audit message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	sourcesJSON, _ := json.Marshal(payload.Sources)

	var filterUsed *string
	if payload.FilterUsed != "" {
		filterUsed = &payload.FilterUsed
	}

	record := &model.QueryLog{
		SessionId:      payload.SessionId,
		Query:          payload.Query,
		Intent:         payload.Intent,
		FilterUsed:     filterUsed,
		DocumentsFound: payload.DocumentsFound,
		Sources:        datatypes.JSON(sourcesJSON),
		Confidence:     payload.Confidence,
		DurationMs:     payload.DurationMs,
	}

	if cs.queryLogs != nil {
		if err := cs.queryLogs.Create(ctx, record); err != nil {
			cs.log.Error("consumer", "failed to persist query log", map[string]interface{}{"error": err.Error()})
			msg.Nack() // Nack for retriable errors
			return
		}
	}

	// Forward to the external event bus when one is configured
	if cs.natsPublisher != nil {
		var event events.Event
		if payload.ErrorKind != "" {
			event = events.NewQueryFailedEvent(payload.SessionId, payload.Query, payload.ErrorKind)
		} else {
			event = events.NewQueryCompletedEvent(
				payload.SessionId,
				payload.Query,
				payload.Intent,
				payload.FilterUsed,
				payload.DocumentsFound,
				payload.Confidence,
				payload.DurationMs,
			)
		}
		if err := cs.natsPublisher.Publish(ctx, event); err != nil {
			cs.log.Warn("consumer", "failed to forward audit event", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}
