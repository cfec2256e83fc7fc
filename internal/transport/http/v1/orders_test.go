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

func createOrder(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreateOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestCreateAndGetOrder(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := createOrder(t, h, `{"user_id":"u1","items":[{"food_item_id":"food_margherita","quantity":2,"price":42.9}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.OrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Message != "Pedido criado com sucesso! 🎉" || created.Order == nil || created.Order.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected response: %+v", created)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+created.Order.ID, nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("order_id")
	c.SetParamValues(created.Order.ID)
	if err := h.GetOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/user/u1", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("u1")
	if err := h.ListUserOrders(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var orders []domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
}

func TestCreateOrderRejected(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := createOrder(t, h, `{"user_id":"u1","items":[]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("order_id")
	c.SetParamValues("nope")
	if err := h.GetOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := createOrder(t, h, `{"user_id":"u1","items":[{"food_item_id":"f1","quantity":1,"price":10}]}`)
	var created domain.OrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	patch := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+created.Order.ID+"/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("order_id")
		c.SetParamValues(created.Order.ID)
		if err := h.UpdateOrderStatus(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := patch(`{"status":"flying"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := patch(`{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing status, got %d", rec.Code)
	}

	rec = patch(`{"status":"confirmed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.Status != domain.OrderStatusConfirmed {
		t.Fatalf("unexpected status: %s", order.Status)
	}
}
