package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// PayoutNotifier receives payout alerts for the admin chat.
type PayoutNotifier interface {
	NotifyPayout(p services.PayoutNotification) error
}

// PayoutHandler serves redeem requests, payouts and wallets.
type PayoutHandler struct {
	base
	telegram PayoutNotifier
}

// NewPayoutHandler constructs PayoutHandler.
func NewPayoutHandler(backend *services.Backend, notes store.Notifications, telegram PayoutNotifier, cfg *config.Config) *PayoutHandler {
	return &PayoutHandler{base: newBase(backend, notes, cfg), telegram: telegram}
}

func fetchRedeemRequests(ctx context.Context, backend *services.Backend, tok string) ([]models.RedeemRequest, error) {
	list, _, err := services.FetchList[models.RedeemRequest](ctx, backend, tok, services.PathBankDetailsAll, nil, "bankDetails")
	return list, err
}

// PendingPayouts counts redeem requests still awaiting disbursal.
func PendingPayouts(reqs []models.RedeemRequest) int {
	count := 0
	for _, r := range reqs {
		if r.RedeemAmount.IsPositive() && r.Pending() {
			count++
		}
	}
	return count
}

// RedeemRequests lists members with a positive redeem amount.
func (h *PayoutHandler) RedeemRequests(c *fiber.Ctx) error {
	var f filters.Redeem
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	reqs, err := fetchRedeemRequests(c.UserContext(), h.backend, token(c))
	if err != nil {
		return err
	}

	filtered := filters.Apply(reqs, f.Match)
	rows, meta := utils.Paginate(filtered, h.pagination(c))

	total := decimal.Zero
	for _, r := range filtered {
		total = total.Add(r.RedeemAmount)
	}

	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"summary": fiber.Map{
			"requests":    len(filtered),
			"pending":     PendingPayouts(filtered),
			"totalAmount": total,
		},
	})
}

type redeemStatusRequest struct {
	Status   string          `json:"status"`
	UserName string          `json:"userName"`
	Amount   decimal.Decimal `json:"amount"`
}

// UpdateRedeemStatus sets a member's redeem status, typically to deposited.
func (h *PayoutHandler) UpdateRedeemStatus(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	var req redeemStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return fiber.NewError(fiber.StatusBadRequest, "status is required")
	}

	if _, err := h.send(c, http.MethodPut, services.RedeemStatusPath(userID), fiber.Map{"status": status}); err != nil {
		return err
	}

	who := req.UserName
	if who == "" {
		who = "member " + userID
	}
	h.notify(c, "payout", fmt.Sprintf("Redeem request of %s marked %s", who, status))
	if status == models.RedeemDeposited {
		h.alert(services.PayoutNotification{UserName: who, Amount: req.Amount, Status: status, Admin: adminName(c)})
	}

	return dataResponse(c, fiber.Map{"userId": userID, "redeemStatus": status})
}

type redeemAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateRedeemAmount adjusts a member's pending redeem amount.
func (h *PayoutHandler) UpdateRedeemAmount(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	var req redeemAmountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Amount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}

	resp, err := h.send(c, http.MethodPut, services.RedeemAmountPath(userID), fiber.Map{"redeemAmount": req.Amount})
	if err != nil {
		return err
	}
	h.notify(c, "payout", "Redeem amount of member "+userID+" set to "+req.Amount.StringFixed(2))
	return relay(c, resp, "redeem amount updated")
}

// RedeemHistory relays a member's past redeem requests.
func (h *PayoutHandler) RedeemHistory(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	list, _, err := services.FetchList[json.RawMessage](c.UserContext(), h.backend, token(c), services.RedeemHistoryPath(userID), nil, "history", "redeemHistory")
	if err != nil {
		return err
	}
	return dataResponse(c, list)
}

// BankDetails relays a member's payout destination.
func (h *PayoutHandler) BankDetails(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	var bank models.BankDetails
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.BankDetailsPath(userID), nil, &bank); err != nil {
		return err
	}
	return dataResponse(c, bank)
}

// DisbursalOrder is the body of the backend's payment-order proxy.
type DisbursalOrder struct {
	UserID  string          `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	Receipt string          `json:"receipt"`
	Notes   DisbursalNotes  `json:"notes"`
}

// DisbursalNotes tags a payment order as an admin payout.
type DisbursalNotes struct {
	Type            string `json:"type"`
	RedeemRequestID string `json:"redeem_request_id"`
	UserName        string `json:"user_name"`
	Purpose         string `json:"purpose"`
}

// NewDisbursalOrder builds the order body for a redeem request.
func NewDisbursalOrder(r models.RedeemRequest, unix int64) DisbursalOrder {
	return DisbursalOrder{
		UserID:  r.User.ID.String(),
		Amount:  r.RedeemAmount,
		Receipt: fmt.Sprintf("payout_%s_%d", r.ID, unix),
		Notes: DisbursalNotes{
			Type:            "admin_payout",
			RedeemRequestID: r.ID.String(),
			UserName:        r.User.Name,
			Purpose:         "Redeem payout",
		},
	}
}

type disbursalRequest struct {
	RedeemRequestID models.FlexID   `json:"redeemRequestId"`
	UserID          models.FlexID   `json:"userId"`
	UserName        string          `json:"userName"`
	Amount          decimal.Decimal `json:"amount"`
}

// CreateDisbursalOrder asks the backend to open a payment order for a
// redeem request. The backend answers statusCode 201 on success.
func (h *PayoutHandler) CreateDisbursalOrder(c *fiber.Ctx) error {
	var req disbursalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.RedeemRequestID == "" || req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "redeemRequestId and userId are required")
	}
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	order := NewDisbursalOrder(models.RedeemRequest{
		BankDetails:  models.BankDetails{ID: req.RedeemRequestID},
		User:         models.UserRef{ID: req.UserID, Name: req.UserName},
		RedeemAmount: req.Amount,
	}, now().UnixMilli())

	resp, err := h.send(c, http.MethodPost, services.PathCreateOrder, order)
	if err != nil {
		return err
	}

	var payload struct {
		StatusCode int             `json:"statusCode"`
		Message    string          `json:"message"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "invalid payment order response")
	}
	if payload.StatusCode != 0 && payload.StatusCode != http.StatusCreated {
		msg := payload.Message
		if msg == "" {
			msg = "Failed to create payment order"
		}
		return fiber.NewError(fiber.StatusBadGateway, msg)
	}

	h.notify(c, "payout", "Payment order created for "+req.UserName)
	h.alert(services.PayoutNotification{UserName: req.UserName, Amount: req.Amount, Status: "order created", Admin: adminName(c)})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payload.Data,
		"receipt": order.Receipt,
	})
}

// Payouts lists backend payout records.
func (h *PayoutHandler) Payouts(c *fiber.Ctx) error {
	var f filters.Wallets
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	payouts, _, err := services.FetchList[models.Payout](c.UserContext(), h.backend, token(c), services.PathPayouts, nil, "payouts")
	if err != nil {
		return err
	}
	rows, meta := utils.Paginate(filters.Apply(payouts, f.MatchPayout), h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{"filters": f})
}

// PayoutStats relays the backend payout summary.
func (h *PayoutHandler) PayoutStats(c *fiber.Ctx) error {
	var stats map[string]any
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathPayoutStats, nil, &stats); err != nil {
		return err
	}
	return dataResponse(c, stats)
}

// Approve approves a payout.
func (h *PayoutHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, services.PayoutApprovePath, "approved")
}

// Decline declines a payout.
func (h *PayoutHandler) Decline(c *fiber.Ctx) error {
	return h.decide(c, services.PayoutDeclinePath, "declined")
}

type payoutDecisionRequest struct {
	Reason string `json:"reason"`
}

func (h *PayoutHandler) decide(c *fiber.Ctx, path func(string) string, outcome string) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req payoutDecisionRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	resp, err := h.send(c, http.MethodPost, path(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "payout", "Payout "+id+" "+outcome)
	return relay(c, resp, "payout "+outcome)
}

// Wallets lists member wallet balances.
func (h *PayoutHandler) Wallets(c *fiber.Ctx) error {
	var f filters.Wallets
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	wallets, err := h.fetchWallets(c.UserContext(), token(c))
	if err != nil {
		return err
	}
	filtered := filters.Apply(wallets, f.Match)
	rows, meta := utils.Paginate(filtered, h.pagination(c))

	total := decimal.Zero
	for _, w := range filtered {
		total = total.Add(w.Balance)
	}
	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"summary": fiber.Map{"wallets": len(filtered), "totalBalance": total},
	})
}

func (h *PayoutHandler) fetchWallets(ctx context.Context, tok string) ([]models.Wallet, error) {
	list, _, err := services.FetchList[models.Wallet](ctx, h.backend, tok, services.PathWallets, nil, "wallets")
	return list, err
}

// ExportRedeemRequests downloads the redeem request table.
func (h *PayoutHandler) ExportRedeemRequests(c *fiber.Ctx) error {
	var f filters.Redeem
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	reqs, err := fetchRedeemRequests(c.UserContext(), h.backend, token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Payouts",
		Sheet:   "Payouts",
		Headers: []string{"Member", "Email", "Mobile", "Account Holder", "Account Number", "IFSC", "Bank", "UPI", "Redeem Amount", "Status"},
	}
	for _, r := range filters.Apply(reqs, f.Match) {
		t.Rows = append(t.Rows, []any{r.User.Name, r.User.Email, r.User.MobileNumber, r.AccountHolderName, r.AccountNumber, r.IFSCCode, r.BankName, r.UPIID, r.RedeemAmount, r.RedeemStatus})
	}
	return sendExport(c, export.StemPayouts, t)
}

// ExportWallets downloads the wallet table.
func (h *PayoutHandler) ExportWallets(c *fiber.Ctx) error {
	var f filters.Wallets
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	wallets, err := h.fetchWallets(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Wallets",
		Sheet:   "Wallets",
		Headers: []string{"Member", "Balance", "Status"},
	}
	for _, w := range filters.Apply(wallets, f.Match) {
		t.Rows = append(t.Rows, []any{w.MemberName(), w.Balance, w.Status})
	}
	return sendExport(c, export.StemWallets, t)
}

func (h *PayoutHandler) alert(p services.PayoutNotification) {
	if h.telegram == nil {
		return
	}
	go func() {
		if err := h.telegram.NotifyPayout(p); err != nil {
			log.Printf("[Telegram] payout alert failed: %v", err)
		}
	}()
}
