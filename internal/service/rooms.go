package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/events"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/google/uuid"
)

type RoomService struct {
	rooms    repository.RoomRepository
	notifier events.Notifier
}

func NewRoomService(rooms repository.RoomRepository, notifier events.Notifier) *RoomService {
	return &RoomService{rooms: rooms, notifier: notifier}
}

// ListVisible returns rooms in creation order, newest first, keeping only
// public rooms and private rooms the viewer belongs to.
func (s *RoomService) ListVisible(ctx context.Context, viewerID string) ([]*domain.Room, error) {
	all, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Room{}
	for _, r := range all {
		if r.VisibleTo(viewerID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RoomService) CreateRoom(ctx context.Context, creatorID, name, description string, isPrivate bool) (*domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoomInvalid
	}
	room := &domain.Room{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   creatorID,
		Members:     []string{creatorID},
		IsPrivate:   isPrivate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	s.notifier.Notify(ctx, events.TopicRooms)
	return room, nil
}

// FilterRooms keeps rooms whose name or description contains q.
func FilterRooms(rooms []*domain.Room, q string) []*domain.Room {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rooms
	}
	out := []*domain.Room{}
	for _, r := range rooms {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}
