package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"ai-docassist-be/internal/dto"
	"ai-docassist-be/pkg/llm"
)

type stubAssistantService struct{}

func (stubAssistantService) ProcessQuery(ctx context.Context, sessionID, query string) *dto.RAGResponse {
	return &dto.RAGResponse{
		Answer:  "Staff may work from home up to two days per week.",
		Sources: []dto.SourceDTO{},
		Intent:  "Policy",
	}
}

func (stubAssistantService) GetHistory(sessionID string) []llm.Message {
	return []llm.Message{{Role: "user", Content: "q1"}, {Role: "assistant", Content: "a1"}}
}

func newTestApp(secret string) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewAssistantController(stubAssistantService{}, secret).RegisterRoutes(api)
	return app
}

func bearerToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed
}

func TestRoutesRegisteredUnderExpectedPaths(t *testing.T) {
	app := newTestApp("secret")

	// Unauthenticated requests hit the routes (401), not a missing path (404)
	for _, path := range []string{"/api/assistant/v1/ask", "/api/assistant/v1/history/s1"} {
		method := "GET"
		if strings.HasSuffix(path, "ask") {
			method = "POST"
		}
		res, err := app.Test(httptest.NewRequest(method, path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode == fiber.StatusNotFound {
			t.Errorf("%s %s not registered", method, path)
		}
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401 without a token", method, path, res.StatusCode)
		}
	}
}

func TestAskWithValidToken(t *testing.T) {
	app := newTestApp("secret")

	body := strings.NewReader(`{"session_id": "s1", "query": "what's our wellness policy"}`)
	req := httptest.NewRequest("POST", "/api/assistant/v1/ask", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "secret"))

	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestHistoryWithValidToken(t *testing.T) {
	app := newTestApp("secret")

	req := httptest.NewRequest("GET", "/api/assistant/v1/history/s1", nil)
	req.Header.Set("Authorization", bearerToken(t, "secret"))

	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}
