package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
)

func TestListVisible(t *testing.T) {
	ctx := context.Background()
	rooms := &fakeRoomRepo{}
	notifier := &fakeNotifier{}
	svc := NewRoomService(rooms, notifier)

	now := time.Now().UTC()
	seed := []*domain.Room{
		{ID: "public", Name: "Geral", CreatedBy: "u9", Members: []string{"u9"}, IsPrivate: false, CreatedAt: now},
		{ID: "mine", Name: "Projeto", CreatedBy: "u1", Members: []string{"u1", "u2"}, IsPrivate: true, CreatedAt: now},
		{ID: "closed", Name: "Diretoria", CreatedBy: "u9", Members: []string{"u9"}, IsPrivate: true, CreatedAt: now},
	}
	for _, r := range seed {
		if err := rooms.Create(ctx, r); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}

	got, err := svc.ListVisible(ctx, "u1")
	if err != nil {
		t.Fatalf("ListVisible() error = %v", err)
	}
	ids := map[string]bool{}
	for _, r := range got {
		ids[r.ID] = true
	}
	if !ids["public"] || !ids["mine"] {
		t.Errorf("visible rooms = %v, want public and mine", ids)
	}
	if ids["closed"] {
		t.Error("private room leaked to a non-member")
	}
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	rooms := &fakeRoomRepo{}
	notifier := &fakeNotifier{}
	svc := NewRoomService(rooms, notifier)

	t.Run("requires a name", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			if _, err := svc.CreateRoom(ctx, "u1", name, "", false); !errors.Is(err, ErrRoomInvalid) {
				t.Errorf("CreateRoom(%q) error = %v, want ErrRoomInvalid", name, err)
			}
		}
	})

	t.Run("creator becomes the first member", func(t *testing.T) {
		room, err := svc.CreateRoom(ctx, "u1", " Sala ", "conversa geral", true)
		if err != nil {
			t.Fatalf("CreateRoom() error = %v", err)
		}
		if room.Name != "Sala" {
			t.Errorf("name = %q, want trimmed", room.Name)
		}
		if room.CreatedBy != "u1" || len(room.Members) != 1 || room.Members[0] != "u1" {
			t.Errorf("membership = %+v", room)
		}
		if !room.IsPrivate {
			t.Error("privacy flag dropped")
		}
		if len(notifier.topics) == 0 || notifier.topics[len(notifier.topics)-1] != "rooms" {
			t.Errorf("notified topics = %v, want rooms", notifier.topics)
		}
	})
}

func TestFilterRooms(t *testing.T) {
	rooms := []*domain.Room{
		{ID: "r1", Name: "Futebol", Description: "pelada de quinta"},
		{ID: "r2", Name: "Trabalho", Description: "assuntos do projeto"},
		{ID: "r3", Name: "Geral", Description: ""},
	}

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{name: "empty query keeps all", q: "", want: []string{"r1", "r2", "r3"}},
		{name: "matches name case-insensitively", q: "FUTE", want: []string{"r1"}},
		{name: "matches description", q: "projeto", want: []string{"r2"}},
		{name: "no match", q: "xyz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRooms(rooms, tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterRooms() returned %d rooms, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, r.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterUsers(t *testing.T) {
	users := []*domain.User{
		{ID: "u1", DisplayName: "Ana Clara", Email: "ana@example.com"},
		{ID: "u2", DisplayName: "Bruno", Email: "bruno@example.com"},
		{ID: "u3", DisplayName: "Carla", Email: "carla@outro.com"},
	}

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{name: "empty query keeps all", q: "", want: []string{"u1", "u2", "u3"}},
		{name: "matches display name", q: "clara", want: []string{"u1"}},
		{name: "matches email domain", q: "OUTRO", want: []string{"u3"}},
		{name: "substring hits several", q: "example.com", want: []string{"u1", "u2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterUsers(users, tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterUsers() returned %d users, want %d", len(got), len(tt.want))
			}
			for i, u := range got {
				if u.ID != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, u.ID, tt.want[i])
				}
			}
		})
	}
}
