package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/services"
)

func milestoneFixture(t *testing.T, mux http.Handler) *fixture {
	return newFixture(t, mux, func(f *fixture, r fiber.Router) {
		h := NewMilestoneHandler(f.backend, f.store, f.cfg)
		r.Get("/milestones", h.List)
		r.Post("/milestones", h.Create)
		r.Put("/milestones/:id", h.Update)
		r.Delete("/milestones/:id", h.Delete)
		r.Patch("/milestones/:id/active", h.SetActive)
		r.Get("/reward-targets", h.Targets)
		r.Post("/reward-targets", h.CreateTarget)
		r.Put("/reward-targets/:id", h.UpdateTarget)
		r.Delete("/reward-targets/:id", h.DeleteTarget)
	})
}

func TestMilestoneCRUD(t *testing.T) {
	rec := &recorder{}
	f := milestoneFixture(t, rec)

	resp, body := f.do(t, http.MethodPost, "/api/milestones", `{"name":"Gold","referralCount":0,"prize":"Watch"}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "referralCount must be positive" {
		t.Fatalf("invalid create: %d %v", resp.StatusCode, body)
	}
	if rec.count() != 0 {
		t.Fatal("invalid milestone reached the backend")
	}

	resp, body = f.do(t, http.MethodPost, "/api/milestones", `{"name":" Gold ","referralCount":25,"prize":"Watch"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	call := rec.last(t)
	if call.method != http.MethodPost || call.path != services.PathMilestoneNew || call.body["name"] != "Gold" || call.body["referralCount"] != float64(25) {
		t.Fatalf("create call = %+v", call)
	}

	resp, _ = f.do(t, http.MethodPut, "/api/milestones/3", `{"name":"Gold","referralCount":30,"prize":"Watch"}`)
	if call := rec.last(t); resp.StatusCode != http.StatusOK || call.method != http.MethodPut || call.path != services.MilestonePath("3") {
		t.Fatalf("update: %d %+v", resp.StatusCode, call)
	}

	resp, body = f.do(t, http.MethodDelete, "/api/milestones/3", "")
	if call := rec.last(t); resp.StatusCode != http.StatusOK || call.method != http.MethodDelete || call.path != services.MilestonePath("3") {
		t.Fatalf("delete: %d %v %+v", resp.StatusCode, body, call)
	}
}

func TestMilestoneSetActive(t *testing.T) {
	rec := &recorder{}
	f := milestoneFixture(t, rec)

	resp, body := f.do(t, http.MethodPatch, "/api/milestones/3/active", `{}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "active is required" {
		t.Fatalf("missing active: %d %v", resp.StatusCode, body)
	}
	if rec.count() != 0 {
		t.Fatal("backend called without an active flag")
	}

	resp, body = f.do(t, http.MethodPatch, "/api/milestones/3/active", `{"active":false}`)
	if resp.StatusCode != http.StatusOK || body["message"] != "milestone deactivated" {
		t.Fatalf("deactivate: %d %v", resp.StatusCode, body)
	}
	call := rec.last(t)
	if call.method != http.MethodPatch || call.path != services.MilestoneActivePath("3") || call.body["active"] != false {
		t.Fatalf("call = %+v", call)
	}
}

func TestRewardTargets(t *testing.T) {
	rec := &recorder{reply: `{"data":{"rewardTargets":[{"id":1,"name":"Q1","target":10,"reward":"Bonus","amount":"500"}]}}`}
	f := milestoneFixture(t, rec)

	resp, body := f.do(t, http.MethodGet, "/api/reward-targets", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %d %v", resp.StatusCode, body)
	}
	if list := body["data"].([]any); len(list) != 1 || list[0].(map[string]any)["name"] != "Q1" {
		t.Fatalf("targets = %v", body["data"])
	}
	if call := rec.last(t); call.path != services.PathTargetsAll {
		t.Fatalf("list path = %s", call.path)
	}

	resp, body = f.do(t, http.MethodPost, "/api/reward-targets", `{"name":"Q2","target":5,"reward":"Bonus","amount":"-1"}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "amount must not be negative" {
		t.Fatalf("invalid target: %d %v", resp.StatusCode, body)
	}

	resp, _ = f.do(t, http.MethodPost, "/api/reward-targets", `{"name":"Q2","target":5,"reward":"Bonus","amount":"250"}`)
	if call := rec.last(t); resp.StatusCode != http.StatusCreated || call.method != http.MethodPost || call.path != services.PathRewardTarget {
		t.Fatalf("create: %d %+v", resp.StatusCode, call)
	}

	resp, _ = f.do(t, http.MethodPut, "/api/reward-targets/2", `{"name":"Q2","target":8,"reward":"Bonus","amount":"250"}`)
	if call := rec.last(t); resp.StatusCode != http.StatusOK || call.method != http.MethodPut || call.path != services.RewardTargetPath("2") {
		t.Fatalf("update: %d %+v", resp.StatusCode, call)
	}

	resp, _ = f.do(t, http.MethodDelete, "/api/reward-targets/2", "")
	if call := rec.last(t); resp.StatusCode != http.StatusOK || call.method != http.MethodDelete || call.path != services.RewardTargetPath("2") {
		t.Fatalf("delete: %d %+v", resp.StatusCode, call)
	}
}
