package api

import (
	"errors"

	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) getRooms(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	rooms, err := h.rooms.ListVisible(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"rooms": service.FilterRooms(rooms, c.Query("q"))})
}

func (h *Handlers) postRoom(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"isPrivate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	room, err := h.rooms.CreateRoom(c.Context(), userID, req.Name, req.Description, req.IsPrivate)
	if err != nil {
		if errors.Is(err, service.ErrRoomInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"room": room})
}

func (h *Handlers) getContacts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	users, err := h.directory.ListContacts(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"contacts": service.FilterUsers(users, c.Query("q"))})
}
