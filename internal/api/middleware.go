package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sessionCookie = "vma_session"

// TokenValidator resolves a session token to a user id.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Private guards authenticated views: without a valid session the request
// is sent back to the login page; with one, the user id lands in locals.
func Private(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, tokens)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// Public is the symmetric guard: an authenticated user asking for the
// login or register page goes to the default view instead.
func Public(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := currentUser(c, tokens); ok {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx, tokens TokenValidator) (string, bool) {
	token := bearerToken(c)
	if token == "" {
		token = c.Cookies(sessionCookie)
	}
	if token == "" {
		return "", false
	}
	userID, err := tokens.Validate(token)
	if err != nil {
		return "", false
	}
	return userID, true
}

func bearerToken(c *fiber.Ctx) string {
	hdr := c.Get("Authorization")
	const pref = "Bearer "
	if len(hdr) > len(pref) && strings.EqualFold(hdr[:len(pref)], pref) {
		return hdr[len(pref):]
	}
	return ""
}

// RequestLogger logs one line per request through the shared zap logger.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return err
	}
}
