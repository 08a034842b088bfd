package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService sends admin alerts to a Telegram chat.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	httpClient  *http.Client
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     defaultTelegramAPI,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithAPIBase points the service at a different Bot API host.
func (s *TelegramService) WithAPIBase(base string) *TelegramService {
	s.apiBase = strings.TrimRight(base, "/")
	return s
}

// Enabled reports whether both bot token and admin chat are configured.
func (s *TelegramService) Enabled() bool {
	return s != nil && s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s == nil || s.adminChatID == "" {
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// FormatPrice formats an amount with thousand separators and the rupee sign.
func FormatPrice(amount decimal.Decimal) string {
	str := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(str, ".")

	var result strings.Builder
	if amount.IsNegative() {
		result.WriteString("-")
	}
	result.WriteString("₹")
	length := len(whole)
	for i, digit := range whole {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	if frac != "00" {
		result.WriteString("." + frac)
	}
	return result.String()
}

// PayoutNotification describes a payout event for the admin chat.
type PayoutNotification struct {
	UserName string
	Amount   decimal.Decimal
	Status   string
	Admin    string
}

// NotifyPayout reports a payout status transition.
func (s *TelegramService) NotifyPayout(p PayoutNotification) error {
	if !s.Enabled() {
		return nil
	}

	message := fmt.Sprintf(`<b>💸 PAYOUT UPDATE</b>
<b>👤 Member:</b> %s
<b>💰 Amount:</b> %s
<b>📍 Status:</b> %s
<b>🛠 By:</b> %s`,
		htmlEscape(p.UserName),
		FormatPrice(p.Amount),
		htmlEscape(p.Status),
		htmlEscape(p.Admin),
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// NotifyGiftDelivered reports a delivered gift.
func (s *TelegramService) NotifyGiftDelivered(userName, reward, admin string) error {
	if !s.Enabled() {
		return nil
	}

	message := fmt.Sprintf(`<b>🎁 GIFT DELIVERED</b>
<b>👤 Member:</b> %s
<b>🏆 Reward:</b> %s
<b>🛠 By:</b> %s`,
		htmlEscape(userName),
		htmlEscape(reward),
		htmlEscape(admin),
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}
