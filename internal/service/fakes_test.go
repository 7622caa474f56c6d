package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/mapper"
	"scent-advisor-be/internal/model"
	"scent-advisor-be/internal/repository/contract"
	"scent-advisor-be/internal/repository/specification"
	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/pkg/advisor/collection"
	"scent-advisor-be/pkg/events"

	"github.com/google/uuid"
)

var (
	_ unitofwork.UnitOfWork                = (*fakeUoW)(nil)
	_ contract.ChatSessionRepository       = (*fakeSessionRepo)(nil)
	_ contract.ChatMessageRepository       = (*fakeMessageRepo)(nil)
	_ contract.ProductRepository           = (*fakeProductRepo)(nil)
	_ contract.RecommendationLogRepository = (*fakeLogRepo)(nil)
)

// memStore is an in-memory stand-in for the database. Writes made inside a
// transaction only become visible to other units of work on commit.
type memStore struct {
	mu       sync.Mutex
	sessions []*entity.ChatSession
	messages []*entity.ChatMessage
	products []*entity.Product
	logs     []*entity.RecommendationLog

	lastSeq        int64

	productQueries int
	failRole       string // chat message creation fails for this role
	failProducts   error
	failLogCreates int
	logAttempts    int
}

func newMemStore() *memStore {
	m := mapper.NewProductMapper()
	store := &memStore{}
	for i, c := range collection.House() {
		store.products = append(store.products, m.ToEntity(m.CandidateToModel(c, i)))
	}
	return store
}

func (s *memStore) messageCount(sessionId uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.messages {
		if m.ChatSessionId == sessionId {
			n++
		}
	}
	return n
}

func (s *memStore) logCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: f.store}
}

type staging struct {
	sessions []*entity.ChatSession
	messages []*entity.ChatMessage
}

type fakeUoW struct {
	store *memStore
	tx    *staging
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	u.tx = &staging{}
	return nil
}

func (u *fakeUoW) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}
	u.store.mu.Lock()
	u.store.sessions = append(u.store.sessions, u.tx.sessions...)
	u.store.messages = append(u.store.messages, u.tx.messages...)
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.tx == nil {
		return errors.New("no transaction to rollback")
	}
	u.tx = nil
	return nil
}

func (u *fakeUoW) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{uow: u}
}

func (u *fakeUoW) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{uow: u}
}

func (u *fakeUoW) ProductRepository() contract.ProductRepository {
	return &fakeProductRepo{store: u.store}
}

func (u *fakeUoW) RecommendationLogRepository() contract.RecommendationLogRepository {
	return &fakeLogRepo{store: u.store}
}

type fakeSessionRepo struct{ uow *fakeUoW }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	cp := *session
	if r.uow.tx != nil {
		r.uow.tx.sessions = append(r.uow.tx.sessions, &cp)
		return nil
	}
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	r.uow.store.sessions = append(r.uow.store.sessions, &cp)
	return nil
}

func (r *fakeSessionRepo) visible() []*entity.ChatSession {
	r.uow.store.mu.Lock()
	out := append([]*entity.ChatSession{}, r.uow.store.sessions...)
	r.uow.store.mu.Unlock()
	if r.uow.tx != nil {
		out = append(out, r.uow.tx.sessions...)
	}
	return out
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, s := range r.visible() {
		if matchesID(s.Id, specs) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeMessageRepo struct{ uow *fakeUoW }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.uow.store.failRole != "" && message.Role == r.uow.store.failRole {
		return errors.New("insert chat message: connection reset")
	}
	cp := *message
	cp.Chips = append([]string{}, message.Chips...)
	r.uow.store.mu.Lock()
	r.uow.store.lastSeq++
	cp.Seq = r.uow.store.lastSeq
	r.uow.store.mu.Unlock()
	message.Seq = cp.Seq
	if r.uow.tx != nil {
		r.uow.tx.messages = append(r.uow.tx.messages, &cp)
		return nil
	}
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	r.uow.store.messages = append(r.uow.store.messages, &cp)
	return nil
}

// FindAll keeps insertion order unless asked for Chronological, which sorts
// by timestamp then sequence like the SQL implementation.
func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.uow.store.mu.Lock()
	all := append([]*entity.ChatMessage{}, r.uow.store.messages...)
	r.uow.store.mu.Unlock()
	if r.uow.tx != nil {
		all = append(all, r.uow.tx.messages...)
	}

	out := make([]*entity.ChatMessage, 0)
	for _, m := range all {
		if matchesSession(m.ChatSessionId, specs) {
			cp := *m
			out = append(out, &cp)
		}
	}
	for _, s := range specs {
		if _, ok := s.(specification.Chronological); ok {
			sort.SliceStable(out, func(i, j int) bool {
				if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
					return out[i].CreatedAt.Before(out[j].CreatedAt)
				}
				return out[i].Seq < out[j].Seq
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products = append(r.store.products, mapper.NewProductMapper().ToEntity(product))
	return nil
}

func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if matchesSlug(p.Slug, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.productQueries++
	if r.store.failProducts != nil {
		return nil, r.store.failProducts
	}
	return append([]*entity.Product{}, r.store.products...), nil
}

func (r *fakeProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.products)), nil
}

type fakeLogRepo struct{ store *memStore }

func (r *fakeLogRepo) Create(ctx context.Context, log *entity.RecommendationLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.logAttempts++
	if r.store.failLogCreates > 0 {
		r.store.failLogCreates--
		return errors.New("insert recommendation log: deadlock detected")
	}
	cp := *log
	r.store.logs = append(r.store.logs, &cp)
	return nil
}

func matchesID(id uuid.UUID, specs []specification.Specification) bool {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok && byID.ID != id {
			return false
		}
	}
	return true
}

func matchesSession(id uuid.UUID, specs []specification.Specification) bool {
	for _, s := range specs {
		if bySession, ok := s.(specification.ByChatSessionID); ok && bySession.ChatSessionID != id {
			return false
		}
	}
	return true
}

func matchesSlug(slug string, specs []specification.Specification) bool {
	for _, s := range specs {
		if bySlug, ok := s.(specification.BySlug); ok && bySlug.Slug != slug {
			return false
		}
	}
	return true
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingEvents) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
