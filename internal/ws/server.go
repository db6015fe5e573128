package ws

import (
	"context"
	"errors"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/events"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const queryTimeout = 5 * time.Second

// Server upgrades authenticated requests into snapshot-pushing websocket
// subscriptions over the list and detail views.
type Server struct {
	hub       *Hub
	chats     *service.ChatService
	rooms     *service.RoomService
	directory *service.DirectoryService
	log       *zap.SugaredLogger
}

func NewServer(
	hub *Hub,
	chats *service.ChatService,
	rooms *service.RoomService,
	directory *service.DirectoryService,
	log *zap.SugaredLogger,
) *Server {
	return &Server{hub: hub, chats: chats, rooms: rooms, directory: directory, log: log}
}

func (s *Server) Hub() *Hub { return s.hub }

// HandleWS is the websocket.New handler. Locals set by the guard
// middleware survive the upgrade.
func (s *Server) HandleWS(wsConn *websocket.Conn) {
	userID, _ := wsConn.Locals("user_id").(string)
	if userID == "" {
		_ = wsConn.Close()
		return
	}

	conn := newConnection(wsConn, s, userID)
	go conn.writePump()
	go conn.refreshPump()
	conn.readPump()
}

func (s *Server) handleCommand(c *Connection, cmd command) {
	switch cmd.Action {
	case "subscribe":
		v, err := s.buildView(c.userID, cmd)
		if err != nil {
			c.enqueue(frame{Type: "error", Msg: err.Error()})
			return
		}
		c.addView(v)
	case "unsubscribe":
		c.removeView(viewName(cmd))
	}
}

func viewName(cmd command) string {
	if cmd.View == "chat" {
		return "chat:" + cmd.ChatID
	}
	return cmd.View
}

var errUnknownView = errors.New("unknown view")

func (s *Server) buildView(userID string, cmd command) (*viewSub, error) {
	switch cmd.View {
	case "chats":
		return &viewSub{
			name:   "chats",
			topics: []string{events.TopicUserChats(userID)},
			fetch: func(ctx context.Context) (interface{}, error) {
				chats, err := s.chats.ListChats(ctx, userID)
				if err != nil {
					return nil, err
				}
				return chatListItems(chats, time.Now()), nil
			},
		}, nil
	case "chat":
		if cmd.ChatID == "" {
			return nil, errUnknownView
		}
		chatID := cmd.ChatID
		return &viewSub{
			name:   "chat:" + chatID,
			topics: []string{events.TopicChat(chatID)},
			fetch: func(ctx context.Context) (interface{}, error) {
				chat, msgs, err := s.chats.Snapshot(ctx, chatID)
				if err != nil {
					return nil, err
				}
				return chatDetail(chat, msgs), nil
			},
		}, nil
	case "rooms":
		return &viewSub{
			name:   "rooms",
			topics: []string{events.TopicRooms},
			fetch: func(ctx context.Context) (interface{}, error) {
				return s.rooms.ListVisible(ctx, userID)
			},
		}, nil
	case "contacts":
		return &viewSub{
			name:   "contacts",
			topics: []string{events.TopicUsers},
			fetch: func(ctx context.Context) (interface{}, error) {
				return s.directory.ListContacts(ctx, userID)
			},
		}, nil
	default:
		return nil, errUnknownView
	}
}

// refresh re-runs one view's query and pushes the full snapshot. A chat
// whose document has gone missing turns into a redirect back to the list,
// whatever state the view was in.
func (s *Server) refresh(c *Connection, name string) {
	v, ok := c.view(name)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	data, err := v.fetch(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.removeView(name)
			c.enqueue(frame{Type: "redirect", View: name, To: "/"})
			return
		}
		s.log.Warnw("refresh view", "view", name, "user", c.userID, "err", err)
		return
	}
	c.enqueue(frame{Type: "snapshot", View: name, Data: data})
}
