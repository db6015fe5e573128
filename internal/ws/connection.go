package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 64 * 1024
)

// Connection owns one websocket and the view subscriptions opened on it.
// Teardown releases every hub registration before the socket closes, so a
// disposed connection never sees another push.
type Connection struct {
	ws     *websocket.Conn
	srv    *Server
	userID string

	send chan []byte
	jobs chan string
	done chan struct{}
	once sync.Once

	mu    sync.Mutex
	views map[string]*viewSub
}

func newConnection(wsConn *websocket.Conn, srv *Server, userID string) *Connection {
	return &Connection{
		ws:     wsConn,
		srv:    srv,
		userID: userID,
		send:   make(chan []byte, 64),
		jobs:   make(chan string, 16),
		done:   make(chan struct{}),
		views:  make(map[string]*viewSub),
	}
}

// Invalidate enqueues a refresh for every view the topic touches. A full
// queue drops the refresh; the next invalidation catches the view up.
func (c *Connection) Invalidate(topic string) {
	c.mu.Lock()
	var names []string
	for name, v := range c.views {
		for _, t := range v.topics {
			if t == topic {
				names = append(names, name)
				break
			}
		}
	}
	c.mu.Unlock()

	for _, name := range names {
		select {
		case c.jobs <- name:
		default:
		}
	}
}

func (c *Connection) addView(v *viewSub) {
	c.mu.Lock()
	c.views[v.name] = v
	c.mu.Unlock()
	c.srv.hub.Subscribe(c, v.topics...)

	// initial snapshot
	select {
	case c.jobs <- v.name:
	default:
	}
}

func (c *Connection) removeView(name string) {
	c.mu.Lock()
	v, ok := c.views[name]
	if ok {
		delete(c.views, name)
	}
	c.mu.Unlock()
	if ok {
		c.srv.hub.Unsubscribe(c, v.topics...)
	}
}

func (c *Connection) view(name string) (*viewSub, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[name]
	return v, ok
}

func (c *Connection) enqueue(f frame) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
		// slow consumer, drop
	}
}

func (c *Connection) close() {
	c.once.Do(func() {
		c.srv.hub.UnsubscribeAll(c)
		close(c.done)
		_ = c.ws.Close()
	})
}

type command struct {
	Action string `json:"action"` // subscribe | unsubscribe
	View   string `json:"view"`   // chats | chat | rooms | contacts
	ChatID string `json:"chat_id,omitempty"`
}

func (c *Connection) readPump() {
	defer c.close()
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		c.srv.handleCommand(c, cmd)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
			return
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}

// refreshPump runs view queries off the socket goroutines so a slow
// backend never stalls reads or pings.
func (c *Connection) refreshPump() {
	for {
		select {
		case <-c.done:
			return
		case name := <-c.jobs:
			c.srv.refresh(c, name)
		}
	}
}
