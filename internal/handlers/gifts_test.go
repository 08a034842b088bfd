package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/services"
)

type giftAlert struct {
	userName, reward, admin string
}

type fakeGiftNotifier struct {
	alerts chan giftAlert
}

func (n *fakeGiftNotifier) NotifyGiftDelivered(userName, reward, admin string) error {
	n.alerts <- giftAlert{userName, reward, admin}
	return nil
}

func TestGiftDeliverSendsAlert(t *testing.T) {
	rec := &recorder{}
	notifier := &fakeGiftNotifier{alerts: make(chan giftAlert, 1)}
	f := newFixture(t, rec, func(f *fixture, r fiber.Router) {
		r.Post("/gifts/:id/deliver", NewGiftHandler(f.backend, f.store, notifier, f.cfg).Deliver)
	})

	resp, body := f.do(t, http.MethodPost, "/api/gifts/8/deliver", `{"userName":"Asha","reward":"Smart Watch"}`)
	if resp.StatusCode != http.StatusOK || body["message"] != "gift delivered" {
		t.Fatalf("status = %d body = %v", resp.StatusCode, body)
	}
	if call := rec.last(t); call.method != http.MethodPost || call.path != services.GiftDeliverPath("8") {
		t.Fatalf("call = %+v", call)
	}

	select {
	case a := <-notifier.alerts:
		if a != (giftAlert{"Asha", "Smart Watch", "root"}) {
			t.Fatalf("alert = %+v", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("gift alert not sent")
	}
}
