package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
)

func TestNotificationsFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(services.PathBankDetailsAll, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, redeemRequestsBody)
	})
	f := newFixture(t, mux, func(f *fixture, r fiber.Router) {
		h := NewNotificationHandler(f.store, f.backend)
		r.Get("/notifications", h.List)
		r.Get("/notifications/badges", h.Badges)
		r.Post("/notifications/read-all", h.ReadAll)
		r.Delete("/notifications/:id", h.Delete)
		r.Delete("/notifications", h.Clear)
	})

	ctx := context.Background()
	for _, msg := range []string{"one", "two"} {
		if err := f.store.AddNotification(ctx, &models.Notification{AdminID: "7", Kind: "test", Message: msg}); err != nil {
			t.Fatalf("AddNotification: %v", err)
		}
	}
	if err := f.store.AddNotification(ctx, &models.Notification{AdminID: "other", Message: "hidden"}); err != nil {
		t.Fatalf("AddNotification: %v", err)
	}

	_, body := f.do(t, http.MethodGet, "/api/notifications", "")
	if body["unread"] != float64(2) || len(body["data"].([]any)) != 2 {
		t.Fatalf("list = %v", body)
	}

	_, body = f.do(t, http.MethodGet, "/api/notifications/badges", "")
	badges := body["data"].(map[string]any)
	if badges["pendingPayouts"] != float64(1) || badges["notifications"] != float64(2) {
		t.Fatalf("badges = %v", badges)
	}

	f.do(t, http.MethodPost, "/api/notifications/read-all", "")
	_, body = f.do(t, http.MethodGet, "/api/notifications", "")
	if body["unread"] != float64(0) {
		t.Fatalf("unread after read-all = %v", body["unread"])
	}

	resp, _ := f.do(t, http.MethodDelete, "/api/notifications/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", resp.StatusCode)
	}

	f.do(t, http.MethodDelete, "/api/notifications", "")
	list, _ := f.store.ListNotifications(ctx, "7", 10)
	if len(list) != 0 {
		t.Fatalf("after clear = %+v", list)
	}
	others, _ := f.store.ListNotifications(ctx, "other", 10)
	if len(others) != 1 {
		t.Fatalf("other admin lost notifications: %+v", others)
	}
}

func TestThemeToggle(t *testing.T) {
	f := newFixture(t, http.NewServeMux(), func(f *fixture, r fiber.Router) {
		h := NewPreferenceHandler(f.store)
		r.Get("/preferences", h.Get)
		r.Put("/preferences/theme", h.SetTheme)
		r.Post("/preferences/theme/toggle", h.Toggle)
	})

	theme := func(body map[string]any) any {
		return body["data"].(map[string]any)["theme"]
	}

	_, body := f.do(t, http.MethodGet, "/api/preferences", "")
	if theme(body) != models.ThemeLight {
		t.Fatalf("default theme = %v", body)
	}
	_, body = f.do(t, http.MethodPost, "/api/preferences/theme/toggle", "")
	if theme(body) != models.ThemeDark {
		t.Fatalf("toggled theme = %v", body)
	}
	_, body = f.do(t, http.MethodPost, "/api/preferences/theme/toggle", "")
	if theme(body) != models.ThemeLight {
		t.Fatalf("toggled back theme = %v", body)
	}

	resp, _ := f.do(t, http.MethodPut, "/api/preferences/theme", `{"theme":"sepia"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid theme status = %d", resp.StatusCode)
	}
	_, body = f.do(t, http.MethodPut, "/api/preferences/theme", `{"theme":"Dark"}`)
	if theme(body) != models.ThemeDark {
		t.Fatalf("set theme = %v", body)
	}
}

func TestSettingsContentPartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(services.PathPrivacyActive, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"id":1,"title":"Privacy","content":"We keep your data safe."}}`)
	})
	mux.HandleFunc(services.PathTermsActive, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"No active terms"}`)
	})
	mux.HandleFunc(services.PathFAQs, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"faqs":[{"id":1,"question":"Q","answer":"A"}]}`)
	})
	f := newFixture(t, mux, func(f *fixture, r fiber.Router) {
		r.Get("/settings/content", NewSettingsHandler(f.backend, f.store, f.cfg).Content)
	})

	resp, body := f.do(t, http.MethodGet, "/api/settings/content", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data := body["data"].(map[string]any)
	if data["terms"] != nil || data["privacy"].(map[string]any)["title"] != "Privacy" || len(data["faqs"].([]any)) != 1 {
		t.Fatalf("data = %v", data)
	}
	errs := body["errors"].(map[string]any)
	if len(errs) != 1 || errs["terms"] != "No active terms" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestKYCRejectRequiresRemarks(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc(services.KYCRejectPath("4"), func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})
	f := newFixture(t, mux, func(f *fixture, r fiber.Router) {
		r.Post("/kyc/:id/reject", NewKYCHandler(f.backend, f.store, f.cfg).Reject)
	})

	resp, _ := f.do(t, http.MethodPost, "/api/kyc/4/reject", `{"remarks":" "}`)
	if resp.StatusCode != http.StatusBadRequest || called {
		t.Fatalf("status = %d called = %v", resp.StatusCode, called)
	}
	resp, _ = f.do(t, http.MethodPost, "/api/kyc/4/reject", `{"remarks":"Blurry image"}`)
	if resp.StatusCode != http.StatusOK || !called {
		t.Fatalf("status = %d called = %v", resp.StatusCode, called)
	}
}

func multipartRequest(t *testing.T, fields map[string]string, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="images"; filename="kit.png"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write([]byte("image-bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProductCreateForwardsUpload(t *testing.T) {
	var gotName, gotFile string
	mux := http.NewServeMux()
	mux.HandleFunc(services.PathProductAdd, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotName = r.FormValue("name")
		if files := r.MultipartForm.File["images"]; len(files) == 1 {
			gotFile = files[0].Filename
		}
		writeJSON(w, http.StatusCreated, `{"data":{"id":3}}`)
	})
	f := newFixture(t, mux, func(f *fixture, r fiber.Router) {
		r.Post("/products", NewProductHandler(f.backend, f.store, f.cfg).Create)
	})

	resp, _ := f.send(t, multipartRequest(t, map[string]string{"name": "Starter Kit", "price": "999"}, "image/png"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if gotName != "Starter Kit" || gotFile != "kit.png" {
		t.Fatalf("forwarded name=%q file=%q", gotName, gotFile)
	}

	resp, _ = f.send(t, multipartRequest(t, map[string]string{"name": "Starter Kit"}, "application/pdf"))
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("pdf upload status = %d", resp.StatusCode)
	}
}

func TestProductImageProxy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(services.ProductImagePath("3"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		w.Header().Set("Cache-Control", "max-age=60")
		w.Write([]byte("webp"))
	})
	f := newFixture(t, mux, func(f *fixture, r fiber.Router) {
		r.Get("/products/:id/image", NewProductHandler(f.backend, f.store, f.cfg).Image)
	})

	resp, _ := f.do(t, http.MethodGet, "/api/products/3/image", "")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/webp" || resp.Header.Get("Cache-Control") != "max-age=60" {
		t.Fatalf("got %d %v", resp.StatusCode, resp.Header)
	}
}
