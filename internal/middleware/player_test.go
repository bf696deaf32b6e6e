package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnsurePlayerIDCopiesID(t *testing.T) {
	t.Parallel()
	var seen []string
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/", func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusNoContent)
	})

	ids := []string{"alice", "bob", "zzzzz", "mallory"}
	for i, id := range ids {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if i%2 == 0 {
			req.Header.Set("X-Player-ID", id)
		} else {
			req = httptest.NewRequest(http.MethodGet, "/?playerId="+id, nil)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusNoContent {
			t.Fatalf("unexpected status: got=%d want=%d", resp.StatusCode, fiber.StatusNoContent)
		}
	}

	for i, id := range ids {
		if seen[i] != id {
			t.Errorf("id %d rewritten by later requests: got=%q want=%q", i, seen[i], id)
		}
	}
}

func TestEnsurePlayerIDMissing(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("unexpected status: got=%d want=%d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}
