package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/events"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileAttachment describes an already-uploaded blob attached to a message.
// Uploading happens before the message write; an upload failure never
// produces a partial message.
type FileAttachment struct {
	URL         string
	Name        string
	ContentType string
}

type ChatService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	notifier events.Notifier
	exporter *events.Exporter
	log      *zap.SugaredLogger
}

func NewChatService(
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	notifier events.Notifier,
	exporter *events.Exporter,
	log *zap.SugaredLogger,
) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
		notifier: notifier,
		exporter: exporter,
		log:      log,
	}
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*domain.Chat, error) {
	return s.chats.ListForUser(ctx, userID)
}

func (s *ChatService) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	return s.chats.Get(ctx, chatID)
}

// Snapshot assembles the detail view: chat metadata plus the full message
// sequence in creation order. Returns repository.ErrNotFound when the chat
// document is absent, which the caller turns into a redirect.
func (s *ChatService) Snapshot(ctx context.Context, chatID string) (*domain.Chat, []*domain.Message, error) {
	chat, err := s.chats.Get(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return chat, msgs, nil
}

// SendMessage writes the message document, then refreshes the chat's
// denormalized last-message summary. The two writes are sequential and not
// atomic; a crash in between leaves the summary stale until the next send.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, text string, file *FileAttachment) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && file == nil {
		return nil, ErrEmptyMessage
	}

	chat, err := s.chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if file != nil {
		msg.FileURL = file.URL
		msg.FileName = file.Name
		msg.FileType = file.ContentType
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("write message: %w", err)
	}

	summary := *msg
	if summary.Text == "" {
		if summary.FileName != "" {
			summary.Text = "Enviou um arquivo: " + summary.FileName
		} else {
			summary.Text = "Enviou um arquivo"
		}
	}
	if err := s.chats.SetLastMessage(ctx, chatID, &summary, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("update chat summary: %w", err)
	}

	topics := []string{events.TopicChat(chatID)}
	for _, p := range chat.Participants {
		topics = append(topics, events.TopicUserChats(p))
	}
	s.notifier.Notify(ctx, topics...)

	if s.exporter != nil {
		if err := s.exporter.MessageCreated(ctx, chatID, msg); err != nil {
			s.log.Warnw("export message.created", "chat", chatID, "err", err)
		}
	}
	return msg, nil
}

// CreateDirectChat reuses an existing one-to-one conversation between the
// pair when one exists. The scan and the create are not transactional, so
// both ends creating at once can still race into two conversations; that
// window is accepted.
func (s *ChatService) CreateDirectChat(ctx context.Context, selfID, otherID string) (string, bool, error) {
	existing, err := s.chats.ListDirectForUser(ctx, selfID)
	if err != nil {
		return "", false, fmt.Errorf("scan direct chats: %w", err)
	}
	for _, c := range existing {
		if c.HasParticipant(otherID) {
			return c.ID, false, nil
		}
	}

	now := time.Now().UTC()
	chat := &domain.Chat{
		ID:           uuid.NewString(),
		Participants: []string{selfID, otherID},
		IsGroupChat:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return "", false, fmt.Errorf("create chat: %w", err)
	}
	s.notifier.Notify(ctx, events.TopicUserChats(selfID), events.TopicUserChats(otherID))
	return chat.ID, true, nil
}

// CreateGroupChat requires a non-empty name and at least one member
// besides the creator.
func (s *ChatService) CreateGroupChat(ctx context.Context, selfID, name string, memberIDs []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(memberIDs) == 0 {
		return "", ErrGroupInvalid
	}

	participants := []string{selfID}
	for _, id := range memberIDs {
		if id != selfID {
			participants = append(participants, id)
		}
	}

	now := time.Now().UTC()
	chat := &domain.Chat{
		ID:           uuid.NewString(),
		Participants: participants,
		IsGroupChat:  true,
		GroupName:    name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return "", fmt.Errorf("create group chat: %w", err)
	}

	topics := make([]string, 0, len(participants))
	for _, p := range participants {
		topics = append(topics, events.TopicUserChats(p))
	}
	s.notifier.Notify(ctx, topics...)
	return chat.ID, nil
}
