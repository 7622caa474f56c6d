package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/mapper"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/pkg/metrics"
	"scent-advisor-be/internal/repository/specification"
	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/pkg/advisor/conversation"
	"scent-advisor-be/pkg/advisor/recommendation"
	"scent-advisor-be/pkg/events"

	"github.com/google/uuid"
)

type IAdvisorService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error)
}

type advisorService struct {
	uowFactory       unitofwork.RepositoryFactory
	catalogService   ICatalogService
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
	chatMapper       *mapper.ChatMapper
	defaultLocale    string
	now              func() time.Time
}

// NewAdvisorService wires the guided dialogue. eventPublisher may be nil when
// the event bus is unavailable.
func NewAdvisorService(
	uowFactory unitofwork.RepositoryFactory,
	catalogService ICatalogService,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
	defaultLocale string,
) IAdvisorService {
	return &advisorService{
		uowFactory:       uowFactory,
		catalogService:   catalogService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		chatMapper:       mapper.NewChatMapper(),
		defaultLocale:    defaultLocale,
		now:              time.Now,
	}
}

func (s *advisorService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	locale := req.Locale
	if locale == "" {
		locale = s.defaultLocale
	}

	var productSlug *string
	if req.ProductSlug != nil && strings.TrimSpace(*req.ProductSlug) != "" {
		slug := strings.TrimSpace(*req.ProductSlug)
		if _, err := s.catalogService.GetBySlug(ctx, slug); err != nil {
			return nil, err
		}
		productSlug = &slug
	}

	mode := req.Mode
	if mode == "" {
		mode = constant.ChatSessionModeFull
		if productSlug != nil {
			mode = constant.ChatSessionModeContextual
		}
	}

	now := s.now()
	session := entity.ChatSession{
		Id:          uuid.New(),
		Locale:      locale,
		Mode:        mode,
		ProductSlug: productSlug,
		CreatedAt:   now,
	}

	prompt, chips := conversation.Welcome(mode == constant.ChatSessionModeContextual)
	stepKey := conversation.StepInit.Key()
	welcome := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       prompt,
		StepKey:       &stepKey,
		Chips:         chips,
		CreatedAt:     now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin create session: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, &welcome); err != nil {
		return nil, fmt.Errorf("create welcome message: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit create session: %w", err)
	}

	s.logger.Info(constant.LogModuleAdvisor, "Chat session started", map[string]interface{}{
		"session_id": session.Id,
		"mode":       mode,
		"locale":     locale,
	})

	data := map[string]interface{}{
		"session_id": session.Id.String(),
		"mode":       mode,
		"locale":     locale,
	}
	if productSlug != nil {
		data["product_slug"] = *productSlug
	}
	s.emit(ctx, constant.EventSessionStarted, data)

	return &dto.CreateSessionResponse{
		Id:               session.Id,
		Mode:             mode,
		Step:             conversation.StepInit,
		AssistantMessage: prompt,
		Chips:            chips,
	}, nil
}

func (s *advisorService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	step, ok := conversation.ParseStep(req.Step)
	if !ok {
		return nil, ErrInvalidStep
	}
	next := step.Next()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.ChatSessionId})
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	// Loaded before the transaction opens so a cold cache does not hold it.
	var candidates []recommendation.ProductCandidate
	if next.IsTerminal() {
		candidates, err = s.catalogService.Candidates(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin send message: %w", err)
	}
	defer uow.Rollback()

	now := s.now()
	if strings.TrimSpace(req.Message) != "" {
		stepKey := step.Key()
		userMessage := entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Role:          constant.ChatMessageRoleUser,
			Content:       req.Message,
			StepKey:       &stepKey,
			Chips:         []string{},
			CreatedAt:     now,
		}
		if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
			return nil, fmt.Errorf("append user turn: %w", err)
		}
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.Chronological{},
	)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	profile := conversation.BuildProfile(s.chatMapper.ChatMessagesToTurns(history))

	res := &dto.SendMessageResponse{
		Step:            next,
		Recommendations: []recommendation.ScoredCandidate{},
	}

	var result recommendation.Result
	if next.IsTerminal() {
		result = recommendation.Recommend(candidates, profile)
		res.Recommendations = result.All()
		res.AssistantMessage = conversation.TerminalMessage(len(result.Top))
		res.Chips = conversation.TerminalChips(result.Matched())
	} else {
		res.AssistantMessage = next.Prompt()
		res.Chips = next.Chips()
	}

	nextKey := next.Key()
	reply := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       res.AssistantMessage,
		StepKey:       &nextKey,
		Chips:         res.Chips,
		// strictly after the user turn so history replays in order
		CreatedAt: now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &reply); err != nil {
		return nil, fmt.Errorf("append assistant turn: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit send message: %w", err)
	}

	metrics.RecordTurn(nextKey)
	if next.IsTerminal() {
		metrics.RecordRecommendation(result.Matched(), len(res.Recommendations))
		s.afterRecommendation(ctx, session.Id, profile, result)
	}

	return res, nil
}

// afterRecommendation feeds the recommendation log and the event bus. Both are
// side channels: the turn is already committed and the client gets its answer.
func (s *advisorService) afterRecommendation(ctx context.Context, sessionId uuid.UUID, profile recommendation.UserProfile, result recommendation.Result) {
	if !result.Matched() {
		s.logger.Info(constant.LogModuleAdvisor, "No creation matched the profile", map[string]interface{}{
			"session_id": sessionId,
		})
		s.emit(ctx, constant.EventRecommendationNoMatch, map[string]interface{}{
			"session_id": sessionId.String(),
		})
		return
	}

	all := result.All()
	items := make([]dto.RecommendationLogItem, 0, len(all))
	slugs := make([]string, 0, len(all))
	for _, r := range all {
		items = append(items, dto.RecommendationLogItem{Slug: r.Slug, Score: r.Score, Reasons: r.Reasons})
		slugs = append(slugs, r.Slug)
	}

	payload, err := json.Marshal(dto.PublishRecommendationLogMessage{
		ChatSessionId: sessionId,
		Profile:       profile,
		Items:         items,
	})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Error(constant.LogModuleAdvisor, "Failed to enqueue recommendation log", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionId,
		})
	}

	s.logger.Info(constant.LogModuleAdvisor, "Recommendations served", map[string]interface{}{
		"session_id": sessionId,
		"slugs":      slugs,
	})
	s.emit(ctx, constant.EventRecommendationServed, map[string]interface{}{
		"session_id": sessionId.String(),
		"slugs":      slugs,
		"top_count":  len(result.Top),
	})
}

func (s *advisorService) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: s.now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(constant.LogModuleAdvisor, "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
			"event": eventType,
		})
	}
}

func (s *advisorService) GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.Chronological{},
	)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	result := make([]*dto.ChatHistoryResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, &dto.ChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Step:      m.StepKey,
			Chips:     m.Chips,
			CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}
