package api

import (
	"context"
	"errors"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/gofiber/fiber/v2"
)

const authTimeout = 10 * time.Second

func (h *Handlers) getLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

func (h *Handlers) getRegister(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "cadastro"})
}

func (h *Handlers) postRegister(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), authTimeout)
	defer cancel()
	user, token, err := h.session.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return authError(c, err)
	}

	h.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

func (h *Handlers) postLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), authTimeout)
	defer cancel()
	user, token, err := h.session.Login(ctx, req.Email, req.Password)
	if err != nil {
		return authError(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (h *Handlers) postLogout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	ctx, cancel := context.WithTimeout(c.Context(), authTimeout)
	defer cancel()
	if err := h.session.Logout(ctx, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.ClearCookie(sessionCookie)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.tokenTTL),
	})
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
