package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/events"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordHasher and TokenMinter are the credential primitives from
// internal/auth, abstracted so tests can swap them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenMinter interface {
	Mint(userID string) (string, error)
}

// SessionStore tracks which sessions are live so logout can terminate one.
type SessionStore interface {
	Save(ctx context.Context, userID, token string) error
	Delete(ctx context.Context, userID string) error
}

// PresenceMirror is the Redis TTL mirror; failures are logged, never fatal.
type PresenceMirror interface {
	Set(ctx context.Context, userID, status string) error
}

// SessionService is the single writer of session and presence state.
type SessionService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenMinter
	sessions SessionStore
	mirror   PresenceMirror
	notifier events.Notifier
	log      *zap.SugaredLogger
}

func NewSessionService(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenMinter,
	sessions SessionStore,
	mirror PresenceMirror,
	notifier events.Notifier,
	log *zap.SugaredLogger,
) *SessionService {
	return &SessionService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		mirror:   mirror,
		notifier: notifier,
		log:      log,
	}
}

// Register creates the credential and the user document with presence
// online, then hands out a session token.
func (s *SessionService) Register(ctx context.Context, email, password, displayName string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, "", ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if err != repository.ErrNotFound {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		Status:       domain.StatusOnline,
		LastActive:   now,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	if err := s.mirror.Set(ctx, user.ID, domain.StatusOnline); err != nil {
		s.log.Warnw("presence mirror", "user", user.ID, "err", err)
	}

	token, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	s.notifier.Notify(ctx, events.TopicUsers)
	return user, token, nil
}

// Login authenticates, then opportunistically marks the identity online.
// The presence write runs after the credential check settles; its failure
// propagates but the verification itself is not undone, so a crash in
// between leaves presence stale until the mirror TTL expires.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.SetPresence(ctx, user.ID, domain.StatusOnline, now); err != nil {
		return nil, "", fmt.Errorf("mark online: %w", err)
	}
	user.Status = domain.StatusOnline
	user.LastActive = now
	if err := s.mirror.Set(ctx, user.ID, domain.StatusOnline); err != nil {
		s.log.Warnw("presence mirror", "user", user.ID, "err", err)
	}

	token, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	s.notifier.Notify(ctx, events.TopicUsers)
	return user, token, nil
}

// Logout marks the identity offline before terminating the session, in
// that order; either failure reaches the caller.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	if err := s.users.SetPresence(ctx, userID, domain.StatusOffline, now); err != nil {
		return fmt.Errorf("mark offline: %w", err)
	}
	if err := s.mirror.Set(ctx, userID, domain.StatusOffline); err != nil {
		s.log.Warnw("presence mirror", "user", userID, "err", err)
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	s.notifier.Notify(ctx, events.TopicUsers)
	return nil
}

func (s *SessionService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *SessionService) issue(ctx context.Context, userID string) (string, error) {
	token, err := s.tokens.Mint(userID)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	if err := s.sessions.Save(ctx, userID, token); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}
