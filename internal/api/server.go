package api

import (
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/JuniorQuintas/VMA-Chat/internal/storage"
	wsrv "github.com/JuniorQuintas/VMA-Chat/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type Handlers struct {
	session   *service.SessionService
	chats     *service.ChatService
	rooms     *service.RoomService
	directory *service.DirectoryService
	blobs     storage.BlobStore
	tokenTTL  time.Duration
	log       *zap.SugaredLogger
}

// NewServer wires the route surface: public auth pages, private views
// guarded by the session middleware, the websocket upgrade, and a
// catch-all redirect to the default view.
func NewServer(
	tokens TokenValidator,
	session *service.SessionService,
	chats *service.ChatService,
	rooms *service.RoomService,
	directory *service.DirectoryService,
	blobs storage.BlobStore,
	realtime *wsrv.Server,
	tokenTTL time.Duration,
	log *zap.SugaredLogger,
) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger(log))

	h := &Handlers{
		session:   session,
		chats:     chats,
		rooms:     rooms,
		directory: directory,
		blobs:     blobs,
		tokenTTL:  tokenTTL,
		log:       log,
	}

	public := Public(tokens)
	private := Private(tokens)

	app.Get("/login", public, h.getLogin)
	app.Post("/login", public, h.postLogin)
	app.Get("/cadastro", public, h.getRegister)
	app.Post("/cadastro", public, h.postRegister)

	app.Post("/logout", private, h.postLogout)

	app.Get("/", private, h.getChatList)
	app.Get("/chat/:chatId", private, h.getChat)
	app.Post("/chat/:chatId/messages", private, h.postMessage)
	app.Get("/novo-chat", private, h.getNewChat)
	app.Post("/novo-chat", private, h.postNewChat)
	app.Get("/salas", private, h.getRooms)
	app.Post("/salas", private, h.postRoom)
	app.Get("/contatos", private, h.getContacts)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", private, websocket.New(realtime.HandleWS))

	// unknown paths go back to the conversation list
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusFound)
	})

	return app
}
