package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/services"
)

func TestOrderTrackingCancelRefund(t *testing.T) {
	rec := &recorder{}
	f := newFixture(t, rec, func(f *fixture, r fiber.Router) {
		h := NewOrderHandler(f.backend, f.store, f.cfg)
		r.Put("/orders/:id/tracking", h.UpdateTracking)
		r.Post("/orders/:id/cancel", h.Cancel)
		r.Post("/orders/:id/refund", h.Refund)
	})

	resp, body := f.do(t, http.MethodPut, "/api/orders/5/tracking", `{"trackingNumber":"  "}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "trackingNumber is required" {
		t.Fatalf("empty tracking: %d %v", resp.StatusCode, body)
	}
	resp, body = f.do(t, http.MethodPost, "/api/orders/5/refund", `{"amount":"-1"}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "amount must not be negative" {
		t.Fatalf("negative refund: %d %v", resp.StatusCode, body)
	}
	if rec.count() != 0 {
		t.Fatal("invalid requests reached the backend")
	}

	resp, body = f.do(t, http.MethodPut, "/api/orders/5/tracking", `{"trackingNumber":"TRK-1","carrier":"DTDC"}`)
	call := rec.last(t)
	if resp.StatusCode != http.StatusOK || body["message"] != "tracking updated" {
		t.Fatalf("tracking: %d %v", resp.StatusCode, body)
	}
	if call.method != http.MethodPut || call.path != services.OrderTrackingPath("5") || call.body["trackingNumber"] != "TRK-1" {
		t.Fatalf("tracking call = %+v", call)
	}

	resp, _ = f.do(t, http.MethodPost, "/api/orders/5/cancel", "")
	call = rec.last(t)
	if resp.StatusCode != http.StatusOK || call.path != services.OrderCancelPath("5") || call.body["reason"] != "" {
		t.Fatalf("cancel: %d %+v", resp.StatusCode, call)
	}

	resp, _ = f.do(t, http.MethodPost, "/api/orders/5/refund", `{"reason":"damaged","amount":"250"}`)
	call = rec.last(t)
	if resp.StatusCode != http.StatusOK || call.path != services.OrderRefundPath("5") || call.body["amount"] != "250" || call.body["reason"] != "damaged" {
		t.Fatalf("partial refund: %d %+v", resp.StatusCode, call)
	}

	resp, _ = f.do(t, http.MethodPost, "/api/orders/5/refund", `{"reason":"lost"}`)
	call = rec.last(t)
	if _, ok := call.body["amount"]; resp.StatusCode != http.StatusOK || ok {
		t.Fatalf("full refund: %d %+v", resp.StatusCode, call)
	}
}
