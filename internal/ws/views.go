package ws

import (
	"context"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/timefmt"
)

// frame is the wire envelope pushed to clients. A snapshot always carries
// the complete result set for its view; clients replace, never patch.
type frame struct {
	Type string      `json:"type"` // snapshot | redirect | error
	View string      `json:"view,omitempty"`
	Data interface{} `json:"data,omitempty"`
	To   string      `json:"to,omitempty"`
	Msg  string      `json:"msg,omitempty"`
}

type ChatListItem struct {
	*domain.Chat
	Label string `json:"label"`
}

func chatListItems(chats []*domain.Chat, now time.Time) []ChatListItem {
	out := make([]ChatListItem, 0, len(chats))
	for _, c := range chats {
		out = append(out, ChatListItem{Chat: c, Label: timefmt.Label(c.UpdatedAt, now)})
	}
	return out
}

type MessageView struct {
	*domain.Message
	Time string `json:"time"`
}

type ChatDetail struct {
	Chat     *domain.Chat  `json:"chat"`
	Messages []MessageView `json:"messages"`
}

func chatDetail(chat *domain.Chat, msgs []*domain.Message) ChatDetail {
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{Message: m, Time: timefmt.TimeOfDay(m.CreatedAt)})
	}
	return ChatDetail{Chat: chat, Messages: views}
}

// snapshotFunc re-runs a view's query and returns its full result set.
type snapshotFunc func(ctx context.Context) (interface{}, error)

// viewSub is one live subscription: the topics that invalidate it and the
// query that rebuilds it.
type viewSub struct {
	name   string
	topics []string
	fetch  snapshotFunc
}
