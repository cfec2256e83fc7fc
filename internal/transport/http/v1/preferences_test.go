package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

func TestGetPreferencesCreatesDefault(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/preferences/u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("u1")
	if err := h.GetPreferences(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if raw["user_id"] != "u1" {
		t.Fatalf("unexpected user: %+v", raw)
	}
	if list, ok := raw["dietary_restrictions"].([]interface{}); !ok || len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", raw["dietary_restrictions"])
	}
}

func TestUpdatePreferences(t *testing.T) {
	e := echo.New()
	h, db := newTestHandler(t)

	body := `{"dietary_restrictions":["vegetariano"],"favorite_cuisines":["italiana","japonesa"],"spice_level":"medium","budget_range":"moderate"}`
	req := httptest.NewRequest(http.MethodPut, "/api/preferences/u1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("u1")
	if err := h.UpdatePreferences(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := db.GetPreferences(req.Context(), "u1")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if stored == nil || stored.SpiceLevel != domain.SpiceLevelMedium || len(stored.FavoriteCuisines) != 2 {
		t.Fatalf("unexpected stored preferences: %+v", stored)
	}
}

func TestListFoods(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/foods?cuisine=italiana", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListFoods(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []domain.FoodItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Cuisine != "italiana" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
