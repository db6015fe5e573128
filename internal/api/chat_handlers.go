package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/JuniorQuintas/VMA-Chat/internal/media"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/JuniorQuintas/VMA-Chat/internal/timefmt"
	"github.com/gofiber/fiber/v2"
)

type chatListItem struct {
	*domain.Chat
	Label string `json:"label"`
}

func (h *Handlers) getChatList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chats, err := h.chats.ListChats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	items := make([]chatListItem, 0, len(chats))
	for _, chat := range chats {
		items = append(items, chatListItem{Chat: chat, Label: timefmt.Label(chat.UpdatedAt, now)})
	}
	return c.JSON(fiber.Map{"chats": items})
}

type messageView struct {
	*domain.Message
	Time string `json:"time"`
}

func (h *Handlers) getChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	chat, msgs, err := h.chats.Snapshot(c.Context(), chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	views := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, messageView{Message: m, Time: timefmt.TimeOfDay(m.CreatedAt)})
	}
	return c.JSON(fiber.Map{"chat": chat, "messages": views})
}

// postMessage accepts multipart form data: a "text" field and an optional
// "file". The blob goes to storage first; only after that succeeds is the
// message written, so a failed upload never leaves a partial message.
func (h *Handlers) postMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	chatID := c.Params("chatId")
	text := c.FormValue("text")

	var attachment *service.FileAttachment
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		a, err := h.uploadAttachment(c.Context(), chatID, fh)
		if err != nil {
			h.log.Errorw("upload attachment", "chat", chatID, "err", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "file upload failed"})
		}
		attachment = a
	}

	msg, err := h.chats.SendMessage(c.Context(), chatID, userID, text, attachment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "chat not found"})
		default:
			h.log.Errorw("send message", "chat", chatID, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": msg})
}

func (h *Handlers) uploadAttachment(ctx context.Context, chatID string, fh *multipart.FileHeader) (*service.FileAttachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	contentType := fh.Header.Get("Content-Type")
	key := fmt.Sprintf("chats/%s/%d_%s", chatID, time.Now().UnixMilli(), fh.Filename)
	url, err := h.blobs.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	if media.IsImage(contentType) {
		if thumb, err := media.Thumbnail(data); err == nil {
			if _, err := h.blobs.Upload(ctx, key+"_thumb.jpg", "image/jpeg", thumb); err != nil {
				h.log.Warnw("upload thumbnail", "key", key, "err", err)
			}
		} else {
			h.log.Warnw("thumbnail", "key", key, "err", err)
		}
	}

	return &service.FileAttachment{URL: url, Name: fh.Filename, ContentType: contentType}, nil
}

func (h *Handlers) getNewChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	users, err := h.directory.ListContacts(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"users": service.FilterUsers(users, c.Query("q"))})
}

func (h *Handlers) postNewChat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	var req struct {
		UserIDs     []string `json:"userIds"`
		IsGroupChat bool     `json:"isGroupChat"`
		GroupName   string   `json:"groupName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if req.IsGroupChat {
		chatID, err := h.chats.CreateGroupChat(c.Context(), userID, req.GroupName, req.UserIDs)
		if err != nil {
			if errors.Is(err, service.ErrGroupInvalid) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"chatId": chatID, "created": true})
	}

	if len(req.UserIDs) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "direct chat needs exactly one recipient"})
	}
	chatID, created, err := h.chats.CreateDirectChat(c.Context(), userID, req.UserIDs[0])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"chatId": chatID, "created": created})
}
