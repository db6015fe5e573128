package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type staticTokens struct {
	valid map[string]string
}

func (s staticTokens) Validate(token string) (string, error) {
	if userID, ok := s.valid[token]; ok {
		return userID, nil
	}
	return "", errors.New("invalid token")
}

func guardedApp(tokens TokenValidator) *fiber.App {
	app := fiber.New()
	app.Get("/login", Public(tokens), func(c *fiber.Ctx) error {
		return c.SendString("login page")
	})
	app.Get("/", Private(tokens), func(c *fiber.Ctx) error {
		return c.SendString("user " + c.Locals("user_id").(string))
	})
	return app
}

func TestPrivateGuard(t *testing.T) {
	tokens := staticTokens{valid: map[string]string{"good-token": "u1"}}
	app := guardedApp(tokens)

	tests := []struct {
		name       string
		cookie     string
		bearer     string
		wantStatus int
		wantLoc    string
	}{
		{name: "anonymous redirects to login", wantStatus: fiber.StatusFound, wantLoc: "/login"},
		{name: "bad cookie redirects to login", cookie: "stale", wantStatus: fiber.StatusFound, wantLoc: "/login"},
		{name: "valid cookie passes", cookie: "good-token", wantStatus: fiber.StatusOK},
		{name: "valid bearer passes", bearer: "good-token", wantStatus: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantLoc != "" && resp.Header.Get("Location") != tt.wantLoc {
				t.Errorf("location = %q, want %q", resp.Header.Get("Location"), tt.wantLoc)
			}
		})
	}
}

func TestPublicGuard(t *testing.T) {
	tokens := staticTokens{valid: map[string]string{"good-token": "u1"}}
	app := guardedApp(tokens)

	t.Run("anonymous sees the page", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
		}
	})

	t.Run("authenticated user is sent home", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/login", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusFound)
		}
		if loc := resp.Header.Get("Location"); loc != "/" {
			t.Errorf("location = %q, want /", loc)
		}
	})
}
