package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
)

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*domain.User // by id
	presenceErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errors.New("duplicate key")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListOthers(_ context.Context, excludeID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.User{}
	for _, u := range r.users {
		if u.ID != excludeID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetPresence(_ context.Context, id, status string, at time.Time) error {
	if r.presenceErr != nil {
		return r.presenceErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	u.LastActive = at
	return nil
}

type fakeChatRepo struct {
	mu      sync.Mutex
	chats   map[string]*domain.Chat
	created int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: map[string]*domain.Chat{}}
}

func (r *fakeChatRepo) Create(_ context.Context, c *domain.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.chats[c.ID] = &cp
	r.created++
	return nil
}

func (r *fakeChatRepo) Get(_ context.Context, id string) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChatRepo) ListForUser(_ context.Context, userID string) ([]*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Chat{}
	for _, c := range r.chats {
		if c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) ListDirectForUser(_ context.Context, userID string) ([]*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Chat{}
	for _, c := range r.chats {
		if !c.IsGroupChat && c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) SetLastMessage(_ context.Context, chatID string, m *domain.Message, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *m
	c.LastMessage = &cp
	c.UpdatedAt = at
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (r *fakeMessageRepo) Insert(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) ListByChat(_ context.Context, chatID string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Message{}
	for _, m := range r.messages {
		if m.ChatID == chatID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms []*domain.Room
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *room
	r.rooms = append(r.rooms, &cp)
	return nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		cp := *room
		out = append(out, &cp)
	}
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (n *fakeNotifier) Notify(_ context.Context, topics ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.topics = append(n.topics, topics...)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hash:"+password }

type fakeMinter struct{}

func (fakeMinter) Mint(userID string) (string, error) { return "token:" + userID, nil }

type fakeSessions struct {
	saved     map[string]string
	deleteErr error
	deleted   []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{saved: map[string]string{}}
}

func (s *fakeSessions) Save(_ context.Context, userID, token string) error {
	s.saved[userID] = token
	return nil
}

func (s *fakeSessions) Delete(_ context.Context, userID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, userID)
	delete(s.saved, userID)
	return nil
}

type fakeMirror struct {
	statuses map[string]string
	err      error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{statuses: map[string]string{}}
}

func (m *fakeMirror) Set(_ context.Context, userID, status string) error {
	if m.err != nil {
		return m.err
	}
	m.statuses[userID] = status
	return nil
}
