package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/pkg/advisor/recommendation"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "RECOMMENDATION_LOG_TEST"

func startConsumer(t *testing.T, store *memStore, opts ...ConsumerOption) IPublisherService {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewRecommendationLogConsumer(pubSub, testTopic, &fakeFactory{store: store}, logger.NewNopLogger(), opts...)
	require.NoError(t, consumer.Consume(ctx))

	return NewPublisherService(testTopic, pubSub)
}

func logPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(dto.PublishRecommendationLogMessage{
		ChatSessionId: uuid.New(),
		Profile:       recommendation.NewUserProfile(),
		Items:         []dto.RecommendationLogItem{{Slug: "or-solaire", Score: 61, Reasons: []string{"Ambiance Or Solaire"}}},
	})
	require.NoError(t, err)
	return payload
}

func TestRecommendationLogConsumer_PersistsLog(t *testing.T) {
	store := newMemStore()
	publisher := startConsumer(t, store)

	require.NoError(t, publisher.Publish(context.Background(), logPayload(t)))

	assert.Eventually(t, func() bool { return store.logCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	store.mu.Lock()
	stored := store.logs[0]
	store.mu.Unlock()
	assert.JSONEq(t, `[{"slug":"or-solaire","score":61,"reasons":["Ambiance Or Solaire"]}]`, string(stored.RecommendedProductsJson))

	var profile recommendation.UserProfile
	require.NoError(t, json.Unmarshal(stored.ProfileJson, &profile))
	assert.Equal(t, recommendation.NewUserProfile(), profile)
}

func TestRecommendationLogConsumer_MalformedMessagesAreDropped(t *testing.T) {
	store := newMemStore()
	publisher := startConsumer(t, store)

	require.NoError(t, publisher.Publish(context.Background(), []byte("{not json")))
	require.NoError(t, publisher.Publish(context.Background(), []byte(`{"items":[]}`)))
	require.NoError(t, publisher.Publish(context.Background(), logPayload(t)))

	assert.Eventually(t, func() bool { return store.logCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return store.logCount() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func (s *memStore) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logAttempts
}

func TestRecommendationLogConsumer_RetriesAfterPersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.failLogCreates = 2
	publisher := startConsumer(t, store, WithRetryPolicy(3, time.Millisecond))

	require.NoError(t, publisher.Publish(context.Background(), logPayload(t)))

	assert.Eventually(t, func() bool { return store.logCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, store.attempts())
}

func TestRecommendationLogConsumer_OutageIsBounded(t *testing.T) {
	store := newMemStore()
	store.failLogCreates = 1000
	publisher := startConsumer(t, store, WithRetryPolicy(3, time.Millisecond))

	require.NoError(t, publisher.Publish(context.Background(), logPayload(t)))

	assert.Eventually(t, func() bool { return store.attempts() == 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return store.attempts() > 3 }, 200*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, 0, store.logCount())

	// the consumer keeps serving once the database recovers
	store.mu.Lock()
	store.failLogCreates = 0
	store.mu.Unlock()
	require.NoError(t, publisher.Publish(context.Background(), logPayload(t)))
	assert.Eventually(t, func() bool { return store.logCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}
