package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/voxpop-app/voxpop/pkg/internal/services"
	"github.com/voxpop-app/voxpop/pkg/internal/testutil"
)

func newTestServer() *fiber.App {
	auth := services.NewAuthService(testutil.NewMemoryAccountStore(), "test-secret")
	polls := services.NewPollService(testutil.NewMemoryPollStore())
	return NewServer(polls, auth)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func signUp(t *testing.T, app *fiber.App, name string) string {
	t.Helper()

	credentials := fiber.Map{"username": name, "password": "hunter22"}
	if resp := doJSON(t, app, "POST", "/api/auth/register", "", credentials); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d", name, resp.StatusCode)
	}

	resp := doJSON(t, app, "POST", "/api/auth/login", "", credentials)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", name, resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.Token
}

type pollResponse struct {
	ID      uint `json:"id"`
	Options []struct {
		Text  string `json:"text"`
		Votes int    `json:"votes"`
	} `json:"options"`
	Voters []uint `json:"voters"`
}

func TestPollFlow(t *testing.T) {
	app := newTestServer()

	tokenA := signUp(t, app, "alice")
	tokenB := signUp(t, app, "bob")

	// Create as A.
	resp := doJSON(t, app, "POST", "/api/polls", tokenA, fiber.Map{
		"title":   "Lunch",
		"options": []string{"Pizza", "Salad"},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create poll: status %d", resp.StatusCode)
	}
	var created pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created poll: %v", err)
	}
	if len(created.Options) != 2 || created.Options[0].Text != "Pizza" || created.Options[0].Votes != 0 {
		t.Errorf("unexpected created poll: %+v", created)
	}

	// Vote as B.
	votePath := fmt.Sprintf("/api/polls/%d/vote", created.ID)
	resp = doJSON(t, app, "POST", votePath, tokenB, fiber.Map{"optionIndex": 0})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("vote: status %d", resp.StatusCode)
	}
	var voted pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&voted); err != nil {
		t.Fatalf("decode voted poll: %v", err)
	}
	if voted.Options[0].Votes != 1 || voted.Options[1].Votes != 0 {
		t.Errorf("votes after cast: %+v", voted.Options)
	}

	// B votes again, nothing changes.
	if resp = doJSON(t, app, "POST", votePath, tokenB, fiber.Map{"optionIndex": 1}); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("duplicate vote: status %d, want 400", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/polls/%d", created.ID), "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get poll: status %d", resp.StatusCode)
	}
	var current pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		t.Fatalf("decode poll: %v", err)
	}
	if current.Options[0].Votes != 1 || current.Options[1].Votes != 0 || len(current.Voters) != 1 {
		t.Errorf("duplicate vote changed state: %+v", current)
	}

	// List view carries titles but no vote data.
	resp = doJSON(t, app, "GET", "/api/polls", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list polls: status %d", resp.StatusCode)
	}
	var listed []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode poll list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d polls, want 1", len(listed))
	}
	if listed[0]["title"] != "Lunch" {
		t.Errorf("listed title: %v", listed[0]["title"])
	}
	if _, ok := listed[0]["options"]; ok {
		t.Error("list view must not carry options")
	}
	if _, ok := listed[0]["voters"]; ok {
		t.Error("list view must not carry voters")
	}
}

func TestPollRouteFailures(t *testing.T) {
	app := newTestServer()
	token := signUp(t, app, "carol")

	// No credential on protected routes.
	resp := doJSON(t, app, "POST", "/api/polls", "", fiber.Map{
		"title":   "Lunch",
		"options": []string{"Pizza", "Salad"},
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("create without token: status %d, want 401", resp.StatusCode)
	}

	// Too few options.
	resp = doJSON(t, app, "POST", "/api/polls", token, fiber.Map{
		"title":   "Lunch",
		"options": []string{"Pizza"},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("create with 1 option: status %d, want 400", resp.StatusCode)
	}

	// Unknown poll.
	if resp = doJSON(t, app, "GET", "/api/polls/999", "", nil); resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("get unknown poll: status %d, want 404", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/polls/999/vote", token, fiber.Map{"optionIndex": 0})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("vote on unknown poll: status %d, want 404", resp.StatusCode)
	}

	// Out-of-range option index.
	created := doJSON(t, app, "POST", "/api/polls", token, fiber.Map{
		"title":   "Lunch",
		"options": []string{"Pizza", "Salad"},
	})
	var poll pollResponse
	if err := json.NewDecoder(created.Body).Decode(&poll); err != nil {
		t.Fatalf("decode created poll: %v", err)
	}
	other := signUp(t, app, "dave")
	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/polls/%d/vote", poll.ID), other, fiber.Map{"optionIndex": 2})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("out-of-range vote: status %d, want 400", resp.StatusCode)
	}
}
