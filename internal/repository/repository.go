package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListOthers(ctx context.Context, excludeID string) ([]*domain.User, error)
	SetPresence(ctx context.Context, id, status string, at time.Time) error
}

type ChatRepository interface {
	Create(ctx context.Context, c *domain.Chat) error
	Get(ctx context.Context, id string) (*domain.Chat, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	ListDirectForUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	SetLastMessage(ctx context.Context, chatID string, m *domain.Message, at time.Time) error
}

type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	ListByChat(ctx context.Context, chatID string) ([]*domain.Message, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	List(ctx context.Context) ([]*domain.Room, error)
}
