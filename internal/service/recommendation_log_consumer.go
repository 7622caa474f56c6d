package service

import (
	"context"
	"encoding/json"
	"time"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

const (
	defaultLogMaxAttempts = 3
	defaultLogRetryDelay  = 500 * time.Millisecond
)

type recommendationLogConsumer struct {
	subscriber  message.Subscriber
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	logger      logger.ILogger
	maxAttempts int
	retryDelay  time.Duration
}

type ConsumerOption func(*recommendationLogConsumer)

// WithRetryPolicy bounds how often a failed insert is retried before the log
// entry is dropped. The wait grows linearly: delay, 2*delay, ...
func WithRetryPolicy(maxAttempts int, delay time.Duration) ConsumerOption {
	return func(c *recommendationLogConsumer) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

func NewRecommendationLogConsumer(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	opts ...ConsumerOption,
) IConsumerService {
	c := &recommendationLogConsumer{
		subscriber:  subscriber,
		topicName:   topicName,
		uowFactory:  uowFactory,
		logger:      log,
		maxAttempts: defaultLogMaxAttempts,
		retryDelay:  defaultLogRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *recommendationLogConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *recommendationLogConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRecommendationLogMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error(constant.LogModuleRecoLog, "Failed to unmarshal recommendation log message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		msg.Ack() // never retry a payload that cannot parse
		return
	}

	if payload.ChatSessionId == uuid.Nil {
		c.logger.Warn(constant.LogModuleRecoLog, "Recommendation log without session, dropped", map[string]interface{}{
			"message_id": msg.UUID,
		})
		msg.Ack()
		return
	}

	profileJson, err := json.Marshal(payload.Profile)
	if err != nil {
		c.logger.Error(constant.LogModuleRecoLog, "Failed to encode profile", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	items := payload.Items
	if items == nil {
		items = []dto.RecommendationLogItem{}
	}
	itemsJson, err := json.Marshal(items)
	if err != nil {
		c.logger.Error(constant.LogModuleRecoLog, "Failed to encode recommended products", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	log := &entity.RecommendationLog{
		Id:                      uuid.New(),
		ChatSessionId:           payload.ChatSessionId,
		ProfileJson:             profileJson,
		RecommendedProductsJson: itemsJson,
		CreatedAt:               time.Now(),
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.uowFactory.NewUnitOfWork(ctx).RecommendationLogRepository().Create(ctx, log)
		if err == nil {
			break
		}
		c.logger.Warn(constant.LogModuleRecoLog, "Failed to persist recommendation log", map[string]interface{}{
			"error":      err.Error(),
			"session_id": payload.ChatSessionId,
			"attempt":    attempt,
		})
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			// shutting down: hand the message back instead of dropping it
			msg.Nack()
			return
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	if err != nil {
		c.logger.Error(constant.LogModuleRecoLog, "Recommendation log dropped after retries", map[string]interface{}{
			"error":      err.Error(),
			"session_id": payload.ChatSessionId,
			"attempts":   c.maxAttempts,
		})
		msg.Ack()
		return
	}

	c.logger.Info(constant.LogModuleRecoLog, "Recommendation log stored", map[string]interface{}{
		"session_id": payload.ChatSessionId,
		"items":      len(items),
	})
	msg.Ack()
}
