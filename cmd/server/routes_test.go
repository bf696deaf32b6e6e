package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/chessbot-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gm := service.NewGameManager(time.Hour)
	t.Cleanup(gm.Close)
	cfg := config{addr: ":0", origins: "http://localhost:5173"}
	return newApp(cfg, service.NewGameService(gm))
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: got=%d want=%d", resp.StatusCode, http.StatusOK)
	}
}

func TestPlayerIDRequired(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	if code, _ := do(t, app, http.MethodPost, "/api/game/create", "", ""); code != http.StatusUnauthorized {
		t.Errorf("unexpected status: got=%d want=%d", code, http.StatusUnauthorized)
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", ""); code != http.StatusCreated {
		t.Errorf("unexpected status: got=%d want=%d", code, http.StatusCreated)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	if code, _ := do(t, app, http.MethodGet, "/ws/game/abc", "alice", ""); code != http.StatusUpgradeRequired {
		t.Errorf("unexpected status: got=%d want=%d", code, http.StatusUpgradeRequired)
	}
}

func TestGameRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	if code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d", code, http.StatusCreated)
	}
	gameID, _ := body["gameId"].(string)
	if gameID == "" {
		t.Fatalf("no game id in %v", body)
	}
	base := "/api/game/" + gameID

	joins := []struct {
		player string
		code   int
		color  string
	}{
		{"alice", http.StatusOK, "white"},
		{"bob", http.StatusOK, "black"},
		{"carol", http.StatusConflict, ""},
	}
	for _, j := range joins {
		code, body := do(t, app, http.MethodPost, "/api/game/join/"+gameID, j.player, "")
		if code != j.code {
			t.Fatalf("join %s: got=%d want=%d", j.player, code, j.code)
		}
		if j.color != "" && body["color"] != j.color {
			t.Errorf("join %s: got=%v want=%v", j.player, body["color"], j.color)
		}
	}

	steps := []struct {
		name   string
		path   string
		player string
		body   string
		code   int
	}{
		{"black cannot move first", "/move", "bob", `{"from":"e7","to":"e5"}`, http.StatusForbidden},
		{"spectator cannot select", "/select", "carol", `{"square":"e2"}`, http.StatusForbidden},
		{"bad notation", "/move", "alice", `{"from":"z9","to":"e4"}`, http.StatusBadRequest},
		{"off board select", "/select", "alice", `{"square":{"row":8,"col":0}}`, http.StatusBadRequest},
		{"illegal move", "/move", "alice", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity},
		{"empty source", "/move", "alice", `{"from":"e4","to":"e5"}`, http.StatusUnprocessableEntity},
		{"white pawn double step", "/move", "alice", `{"from":"e2","to":"e4"}`, http.StatusOK},
		{"black selects knight", "/select", "bob", `{"square":"g8"}`, http.StatusOK},
		{"black completes the click", "/select", "bob", `{"square":{"row":2,"col":5}}`, http.StatusOK},
		{"undo by either seat", "/undo", "alice", "", http.StatusOK},
		{"new game", "/new", "bob", "", http.StatusOK},
	}
	for _, s := range steps {
		code, body := do(t, app, http.MethodPost, base+s.path, s.player, s.body)
		if code != s.code {
			t.Fatalf("%s: got=%d want=%d (%v)", s.name, code, s.code, body)
		}
	}

	code, body = do(t, app, http.MethodGet, base, "carol", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", code, http.StatusOK)
	}
	if body["toMove"] != "white" || body["historyLength"] != float64(0) {
		t.Errorf("unexpected state after new game: toMove=%v historyLength=%v", body["toMove"], body["historyLength"])
	}
}

func TestSelectResultInResponse(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	gameID := body["gameId"].(string)
	base := "/api/game/" + gameID
	do(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")
	do(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")

	tests := []struct {
		square string
		result string
	}{
		{"e4", "noOp"},
		{"e2", "selected"},
		{"e2", "deselected"},
		{"e2", "selected"},
		{"e5", "moveRejected"},
		{"e2", "selected"},
		{"e4", "moveApplied"},
		{"e7", "selected"},
	}
	for i, tt := range tests {
		code, body := do(t, app, http.MethodPost, base+"/select", "alice", `{"square":"`+tt.square+`"}`)
		if code != http.StatusOK {
			t.Fatalf("step %d: unexpected status %d (%v)", i, code, body)
		}
		if body["result"] != tt.result {
			t.Errorf("step %d: got=%v want=%v", i, body["result"], tt.result)
		}
	}
}

func TestUnknownGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	for _, path := range []string{"/api/game/missing"} {
		if code, _ := do(t, app, http.MethodGet, path, "alice", ""); code != http.StatusNotFound {
			t.Errorf("GET %s: got=%d want=%d", path, code, http.StatusNotFound)
		}
	}
	for _, path := range []string{"/api/game/join/missing", "/api/game/missing/undo", "/api/game/missing/new"} {
		if code, _ := do(t, app, http.MethodPost, path, "alice", ""); code != http.StatusNotFound {
			t.Errorf("POST %s: got=%d want=%d", path, code, http.StatusNotFound)
		}
	}
}

func TestJoinMatchmakingTwice(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	if code, body := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); code != http.StatusOK || body["status"] != "queued" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); code != http.StatusConflict {
		t.Errorf("unexpected status: got=%d want=%d", code, http.StatusConflict)
	}
}

func TestSeatIDsSurviveLaterRequests(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	gameID := body["gameId"].(string)
	do(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")
	do(t, app, http.MethodPost, "/api/game/join/"+gameID, "bob", "")

	for _, stranger := range []string{"zzzzz", "mallory", "x"} {
		do(t, app, http.MethodGet, "/api/game/"+gameID, stranger, "")
		if code, _ := do(t, app, http.MethodPost, "/api/game/"+gameID+"/select", stranger, `{"square":"e2"}`); code != http.StatusForbidden {
			t.Errorf("%s acted in the game: got=%d want=%d", stranger, code, http.StatusForbidden)
		}
	}

	_, body = do(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "")
	players, _ := body["players"].(map[string]any)
	white, _ := players["white"].(map[string]any)
	black, _ := players["black"].(map[string]any)
	if white["id"] != "alice" || black["id"] != "bob" {
		t.Errorf("unexpected seats: white=%v black=%v", white["id"], black["id"])
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", `{"from":"e2","to":"e4"}`); code != http.StatusOK {
		t.Errorf("seated player locked out: got=%d want=%d", code, http.StatusOK)
	}
}
