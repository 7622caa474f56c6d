package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/repository/memory"
	"scent-advisor-be/pkg/advisor/collection"
	"scent-advisor-be/pkg/advisor/conversation"
	"scent-advisor-be/pkg/advisor/recommendation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type advisorFixture struct {
	store     *memStore
	publisher *recordingPublisher
	events    *recordingEvents
	service   *advisorService
}

func newAdvisorFixture(t *testing.T) *advisorFixture {
	t.Helper()
	store := newMemStore()
	factory := &fakeFactory{store: store}
	publisher := &recordingPublisher{}
	evts := &recordingEvents{}
	log := logger.NewNopLogger()

	catalog := NewCatalogService(factory, memory.NewCatalogCache(time.Minute), log)
	svc := NewAdvisorService(factory, catalog, publisher, evts, log, "fr-FR").(*advisorService)

	// Deterministic, strictly increasing clock.
	clock := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &advisorFixture{store: store, publisher: publisher, events: evts, service: svc}
}

func (f *advisorFixture) start(t *testing.T) uuid.UUID {
	t.Helper()
	res, err := f.service.CreateSession(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	return res.Id
}

func (f *advisorFixture) send(t *testing.T, sessionId uuid.UUID, step, message string) *dto.SendMessageResponse {
	t.Helper()
	res, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		ChatSessionId: sessionId,
		Step:          step,
		Message:       message,
	})
	require.NoError(t, err)
	return res
}

func TestAdvisorService_CreateSession(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := newAdvisorFixture(t)
		res, err := f.service.CreateSession(context.Background(), &dto.CreateSessionRequest{})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.Id)
		assert.Equal(t, constant.ChatSessionModeFull, res.Mode)
		assert.Equal(t, conversation.StepInit, res.Step)
		assert.Equal(t, conversation.StepInit.Prompt(), res.AssistantMessage)
		assert.Equal(t, []string{conversation.ChipStart}, res.Chips)

		require.Len(t, f.store.sessions, 1)
		assert.Equal(t, "fr-FR", f.store.sessions[0].Locale)
		assert.Equal(t, 1, f.store.messageCount(res.Id), "welcome turn is persisted")
		assert.Equal(t, []string{constant.EventSessionStarted}, f.events.types())
	})

	t.Run("product page opens a contextual session", func(t *testing.T) {
		f := newAdvisorFixture(t)
		slug := "iris-blanc"
		res, err := f.service.CreateSession(context.Background(), &dto.CreateSessionRequest{Locale: "en-GB", ProductSlug: &slug})
		require.NoError(t, err)

		assert.Equal(t, constant.ChatSessionModeContextual, res.Mode)
		assert.Len(t, res.Chips, 5)
		require.NotNil(t, f.store.sessions[0].ProductSlug)
		assert.Equal(t, "iris-blanc", *f.store.sessions[0].ProductSlug)
		assert.Equal(t, "en-GB", f.store.sessions[0].Locale)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newAdvisorFixture(t)
		slug := "eau-inconnue"
		_, err := f.service.CreateSession(context.Background(), &dto.CreateSessionRequest{ProductSlug: &slug})
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Empty(t, f.store.sessions)
	})
}

func TestAdvisorService_SendMessage_FullDialogue(t *testing.T) {
	f := newAdvisorFixture(t)
	sessionId := f.start(t)

	script := []struct {
		step     string
		message  string
		wantNext conversation.Step
	}{
		{"init", conversation.ChipStart, conversation.StepVibe},
		{"vibe", "Bleu Minéral", conversation.StepFamily},
		{"family", conversation.ChipDontKnow, conversation.StepNotesLiked},
		{"notes_liked", conversation.ChipSkip, conversation.StepNotesAvoid},
		{"notes_avoid", conversation.ChipSkip, conversation.StepIntensity},
		{"intensity", "Équilibré", conversation.StepOccasion},
	}

	for _, turn := range script {
		res := f.send(t, sessionId, turn.step, turn.message)
		assert.Equal(t, turn.wantNext, res.Step)
		assert.Equal(t, turn.wantNext.Prompt(), res.AssistantMessage)
		assert.Equal(t, turn.wantNext.Chips(), res.Chips)
		assert.NotNil(t, res.Recommendations)
		assert.Empty(t, res.Recommendations)
	}
	assert.Empty(t, f.publisher.payloads, "nothing logged before the dialogue completes")

	final := f.send(t, sessionId, "occasion", "Bureau")

	profile := recommendation.NewUserProfile()
	profile.Vibes = []recommendation.Vibe{{Label: "Bleu Minéral", Weight: 5}}
	profile.Moments = []string{"bureau"}
	want := recommendation.Recommend(collection.House(), profile)

	assert.Equal(t, conversation.StepDone, final.Step)
	assert.Equal(t, want.All(), final.Recommendations)
	assert.Equal(t, "bleu-mineral", final.Recommendations[0].Slug)
	assert.Equal(t, conversation.TerminalMessage(3), final.AssistantMessage)
	assert.Equal(t, conversation.RefineChips, final.Chips)

	// welcome + 7 user turns + 7 assistant turns
	assert.Equal(t, 15, f.store.messageCount(sessionId))

	require.Len(t, f.publisher.payloads, 1)
	var logged dto.PublishRecommendationLogMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &logged))
	assert.Equal(t, sessionId, logged.ChatSessionId)
	assert.Equal(t, profile, logged.Profile)
	require.Len(t, logged.Items, len(final.Recommendations))
	assert.Equal(t, final.Recommendations[0].Score, logged.Items[0].Score)

	assert.Equal(t, []string{constant.EventSessionStarted, constant.EventRecommendationServed}, f.events.types())
}

func TestAdvisorService_SendMessage_RefineAfterDone(t *testing.T) {
	f := newAdvisorFixture(t)
	sessionId := f.start(t)
	f.send(t, sessionId, "occasion", "Soirée")

	res := f.send(t, sessionId, "done", conversation.ChipFresher)
	assert.Equal(t, conversation.StepDone, res.Step)
	assert.NotEmpty(t, res.Recommendations)
	assert.Len(t, f.publisher.payloads, 2)
}

func TestAdvisorService_SendMessage_NoMatch(t *testing.T) {
	f := newAdvisorFixture(t)
	sessionId := f.start(t)

	f.send(t, sessionId, "notes_avoid", "Bergamote, Iris, Oud, Ambre")
	res := f.send(t, sessionId, "occasion", "Soirée")

	assert.Equal(t, conversation.StepDone, res.Step)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, conversation.NoMatchMessage, res.AssistantMessage)
	assert.Equal(t, []string{conversation.ChipRestart}, res.Chips)
	assert.Empty(t, f.publisher.payloads)
	assert.Contains(t, f.events.types(), constant.EventRecommendationNoMatch)
}

func TestAdvisorService_SendMessage_EmptyMessageAppendsOnlyReply(t *testing.T) {
	f := newAdvisorFixture(t)
	sessionId := f.start(t)

	res := f.send(t, sessionId, "init", "")
	assert.Equal(t, conversation.StepVibe, res.Step)
	assert.Equal(t, 2, f.store.messageCount(sessionId))

	f.send(t, sessionId, "vibe", "   ")
	assert.Equal(t, 3, f.store.messageCount(sessionId))
}

func TestAdvisorService_SendMessage_Errors(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		f := newAdvisorFixture(t)
		_, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
			ChatSessionId: uuid.New(),
			Step:          "vibe",
			Message:       "Or Solaire",
		})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("invalid step", func(t *testing.T) {
		f := newAdvisorFixture(t)
		_, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
			ChatSessionId: f.start(t),
			Step:          "checkout",
		})
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("failed reply rolls back the user turn", func(t *testing.T) {
		f := newAdvisorFixture(t)
		sessionId := f.start(t)
		f.store.failRole = constant.ChatMessageRoleAssistant

		_, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
			ChatSessionId: sessionId,
			Step:          "vibe",
			Message:       "Or Solaire",
		})
		require.Error(t, err)
		assert.Equal(t, 1, f.store.messageCount(sessionId), "only the welcome turn remains")
	})

	t.Run("catalog failure returns no partial recommendation", func(t *testing.T) {
		f := newAdvisorFixture(t)
		sessionId := f.start(t)
		f.store.failProducts = errors.New("relation \"products\" does not exist")

		res, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
			ChatSessionId: sessionId,
			Step:          "occasion",
			Message:       "Soirée",
		})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, 1, f.store.messageCount(sessionId))
		assert.Empty(t, f.publisher.payloads)
	})

	t.Run("side channel failures do not fail the turn", func(t *testing.T) {
		f := newAdvisorFixture(t)
		sessionId := f.start(t)
		f.publisher.err = errors.New("topic closed")
		f.events.err = errors.New("nats: timeout")

		res := f.send(t, sessionId, "occasion", "Soirée")
		assert.NotEmpty(t, res.Recommendations)
	})
}

func TestAdvisorService_GetHistory(t *testing.T) {
	f := newAdvisorFixture(t)
	sessionId := f.start(t)
	f.send(t, sessionId, "init", conversation.ChipStart)
	f.send(t, sessionId, "vibe", "Noir Velours")

	history, err := f.service.GetHistory(context.Background(), sessionId)
	require.NoError(t, err)
	require.Len(t, history, 5)

	roles := make([]string, 0, len(history))
	for _, h := range history {
		roles = append(roles, h.Role)
	}
	assert.Equal(t, []string{"assistant", "user", "assistant", "user", "assistant"}, roles)
	assert.Equal(t, "Noir Velours", history[3].Content)
	require.NotNil(t, history[4].Step)
	assert.Equal(t, "family", *history[4].Step)
	assert.Equal(t, conversation.StepFamily.Chips(), history[4].Chips)

	_, err = f.service.GetHistory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAdvisorService_GetHistory_SameInstantTurnsKeepWriteOrder(t *testing.T) {
	f := newAdvisorFixture(t)
	frozen := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return frozen }

	sessionId := f.start(t)
	f.send(t, sessionId, "init", conversation.ChipStart)
	f.send(t, sessionId, "vibe", "Noir Velours")

	history, err := f.service.GetHistory(context.Background(), sessionId)
	require.NoError(t, err)
	require.Len(t, history, 5)

	contents := make([]string, 0, len(history))
	for _, h := range history {
		contents = append(contents, h.Content)
	}
	// welcome and both user turns share one timestamp, replies sit 1ms later
	assert.Equal(t, []string{
		conversation.StepInit.Prompt(),
		conversation.ChipStart,
		"Noir Velours",
		conversation.StepVibe.Prompt(),
		conversation.StepFamily.Prompt(),
	}, contents)

	again, err := f.service.GetHistory(context.Background(), sessionId)
	require.NoError(t, err)
	assert.Equal(t, history, again)
}
