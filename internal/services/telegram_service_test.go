package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"0":         "₹0",
		"999":       "₹999",
		"1500":      "₹1,500",
		"1234567.5": "₹1,234,567.50",
		"-2500":     "-₹2,500",
	}
	for in, want := range cases {
		if got := FormatPrice(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPrice(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestNotifyPayoutSendsToAdminChat(t *testing.T) {
	var got telegramMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	svc := NewTelegramService("bot-token", "-100").WithAPIBase(srv.URL)
	err := svc.NotifyPayout(PayoutNotification{
		UserName: "Asha <VIP>",
		Amount:   decimal.NewFromInt(12000),
		Status:   "deposited",
		Admin:    "root",
	})
	if err != nil {
		t.Fatalf("NotifyPayout: %v", err)
	}
	if path != "/botbot-token/sendMessage" {
		t.Errorf("path = %q", path)
	}
	if got.ChatID != "-100" || got.ParseMode != "HTML" {
		t.Errorf("unexpected message: %+v", got)
	}
	if !strings.Contains(got.Text, "₹12,000") || !strings.Contains(got.Text, "Asha &lt;VIP&gt;") {
		t.Errorf("text = %q", got.Text)
	}
}

func TestNotifyDisabledWithoutConfig(t *testing.T) {
	svc := NewTelegramService("", "")
	if svc.Enabled() {
		t.Fatal("service should be disabled")
	}
	if err := svc.NotifyGiftDelivered("a", "b", "c"); err != nil {
		t.Fatalf("NotifyGiftDelivered: %v", err)
	}
}

func TestHTMLEscape(t *testing.T) {
	if got := htmlEscape(`Ravi & "Sons" <b>`); got != "Ravi &amp; &#34;Sons&#34; &lt;b&gt;" {
		t.Fatalf("htmlEscape = %q", got)
	}
}
