package service

import (
	"context"
	"strings"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
)

// DirectoryService serves the contact list and the new-chat user picker:
// the whole identity directory minus the viewer, unpaginated.
type DirectoryService struct {
	users repository.UserRepository
}

func NewDirectoryService(users repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

func (s *DirectoryService) ListContacts(ctx context.Context, selfID string) ([]*domain.User, error) {
	return s.users.ListOthers(ctx, selfID)
}

// FilterUsers keeps users whose display name or email contains q,
// case-insensitively. Applied to the latest snapshot, never persisted.
func FilterUsers(users []*domain.User, q string) []*domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return users
	}
	out := []*domain.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.DisplayName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}
