package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/foodai/internal/adapter/llm"
	"github.com/xiaot623/gogo/foodai/internal/completion"
	"github.com/xiaot623/gogo/foodai/internal/config"
	"github.com/xiaot623/gogo/foodai/internal/history"
	"github.com/xiaot623/gogo/foodai/internal/repository"
	"github.com/xiaot623/gogo/foodai/internal/service"
	"github.com/xiaot623/gogo/foodai/policy"
	"github.com/xiaot623/gogo/foodai/tests/helpers"
)

func newTestHandlerWithClient(t *testing.T, client llm.LLMClient) (*Handler, repository.Store) {
	t.Helper()
	cfg := &config.Config{LLMTimeout: time.Second}
	db := helpers.NewTestSQLiteStore(t)
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	invoker := completion.NewInvoker(client, "mock-model", cfg.LLMTimeout)
	svc := service.New(db, history.NewMemoryStore(history.Options{}), invoker, policyEngine)
	return NewHandler(svc), db
}

func newTestHandler(t *testing.T) (*Handler, repository.Store) {
	return newTestHandlerWithClient(t, llm.NewMockClient())
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "healthy" || resp["service"] != "FoodAI Assistant" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRoot(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["version"] != Version || resp["docs"] != "/docs" || resp["message"] == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	h.RegisterRoutes(e)

	want := map[string]bool{
		"POST /api/chat/message":                    false,
		"DELETE /api/chat/history/:session_id":      false,
		"GET /api/chat/sessions/:session_id/memory": false,
		"PATCH /api/orders/:order_id/status":        false,
		"GET /api/foods":                            false,
		"GET /api/preferences/:user_id":             false,
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, seen := range want {
		if !seen {
			t.Errorf("route %s not registered", route)
		}
	}
}
