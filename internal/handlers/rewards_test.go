package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/services"
)

func rewardFixture(t *testing.T, mux http.Handler) *fixture {
	return newFixture(t, mux, func(f *fixture, r fiber.Router) {
		h := NewRewardHandler(f.backend, f.store, f.cfg)
		r.Get("/rewards", h.List)
		r.Post("/rewards", h.Create)
		r.Put("/rewards/:id", h.Update)
		r.Delete("/rewards/:id", h.Delete)
		r.Post("/rewards/:id/revoke", h.Revoke)
	})
}

func TestRewardCreateValidation(t *testing.T) {
	rec := &recorder{}
	f := rewardFixture(t, rec)

	cases := []struct {
		body    string
		message string
	}{
		{`{"points":5,"reason":"Bonus"}`, "userId is required"},
		{`{"userId":4,"points":0,"reason":"Bonus"}`, "points must be positive"},
		{`{"userId":4,"points":5,"reason":"   "}`, "reason is required"},
		{`{"userId":`, "invalid request body"},
	}
	for _, tc := range cases {
		resp, body := f.do(t, http.MethodPost, "/api/rewards", tc.body)
		if resp.StatusCode != http.StatusBadRequest || body["error"] != tc.message {
			t.Errorf("%s: got %d %v", tc.body, resp.StatusCode, body)
		}
	}
	if rec.count() != 0 {
		t.Fatalf("backend called %d times for invalid input", rec.count())
	}
}

func TestRewardActionsReachBackend(t *testing.T) {
	rec := &recorder{}
	f := rewardFixture(t, rec)

	resp, body := f.do(t, http.MethodPost, "/api/rewards", `{"userId":4,"points":50,"reason":" Bonus "}`)
	if resp.StatusCode != http.StatusCreated || body["message"] != "reward created" {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	call := rec.last(t)
	if call.method != http.MethodPost || call.path != services.PathRewards || call.body["reason"] != "Bonus" || call.body["userId"] != "4" {
		t.Fatalf("create call = %+v", call)
	}

	steps := []struct {
		method, path string
		body         string
		wantMethod   string
		wantPath     string
		message      string
	}{
		{http.MethodPut, "/api/rewards/5", `{"points":10,"reason":"Adjusted"}`, http.MethodPut, services.RewardPath("5"), "reward updated"},
		{http.MethodPost, "/api/rewards/5/revoke", "", http.MethodPost, services.RewardRevokePath("5"), "reward revoked"},
		{http.MethodDelete, "/api/rewards/5", "", http.MethodDelete, services.RewardPath("5"), "reward deleted"},
	}
	for _, s := range steps {
		resp, body := f.do(t, s.method, s.path, s.body)
		if resp.StatusCode != http.StatusOK || body["message"] != s.message {
			t.Fatalf("%s %s: %d %v", s.method, s.path, resp.StatusCode, body)
		}
		if call := rec.last(t); call.method != s.wantMethod || call.path != s.wantPath {
			t.Fatalf("%s %s reached %s %s", s.method, s.path, call.method, call.path)
		}
	}

	unread, _ := f.store.UnreadCount(context.Background(), "7")
	if unread != 4 {
		t.Fatalf("unread = %d, want 4", unread)
	}
}

func TestRewardListForwardsFilter(t *testing.T) {
	var gotQuery url.Values
	mux := http.NewServeMux()
	mux.HandleFunc(services.PathRewards, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"data":{"rewards":[
			{"id":1,"userId":4,"points":"50","reason":"Bonus","revoked":false,"createdAt":"2024-06-02"},
			{"id":2,"userId":4,"points":30,"reason":"Bonus","revoked":true,"createdAt":"2024-06-03"},
			{"id":3,"userId":9,"points":20,"reason":"Bonus","createdAt":"2024-06-04"}
		]}}`)
	})
	f := rewardFixture(t, mux)

	resp, body := f.do(t, http.MethodGet, "/api/rewards?userId=4&revoked=false&dateFrom=2024-06-01", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %v", resp.StatusCode, body)
	}
	if gotQuery.Get("userId") != "4" || gotQuery.Get("revoked") != "false" || gotQuery.Get("startDate") != "2024-06-01" {
		t.Fatalf("backend query = %v", gotQuery)
	}
	rows := body["data"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["id"] != "1" {
		t.Fatalf("rows = %v", rows)
	}
	if body["totalPoints"] != float64(50) {
		t.Fatalf("totalPoints = %v", body["totalPoints"])
	}
}
