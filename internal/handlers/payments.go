package handlers

import (
	"context"
	"net/http"

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

// PaymentHandler serves the payments page.
type PaymentHandler struct {
	base
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{base: newBase(backend, notes, cfg)}
}

func (h *PaymentHandler) fetchPayments(ctx context.Context, tok string) ([]models.Payment, error) {
	rows, _, err := services.FetchList[models.BackendPayment](ctx, h.backend, tok, services.PathPayments, nil, "payments", "orders")
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, r.ToPayment())
	}
	return payments, nil
}

// PaymentSummary is the payments page card block.
type PaymentSummary struct {
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Pending    int             `json:"pending"`
	Amount     decimal.Decimal `json:"amount"`
}

// SummarizePayments counts Paid/Completed as successful and
// Failed/Cancelled as failed; everything else is pending.
func SummarizePayments(payments []models.Payment) PaymentSummary {
	s := PaymentSummary{Amount: decimal.Zero}
	for _, p := range payments {
		s.Total++
		s.Amount = s.Amount.Add(p.Amount)
		switch p.Status {
		case "Paid", "Completed":
			s.Successful++
		case "Failed", "Cancelled":
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}

// List returns filtered, paginated payments with the summary cards.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var f filters.Payments
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	payments, err := h.fetchPayments(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	filtered := filters.Apply(payments, f.Match)
	rows, meta := utils.Paginate(filtered, h.pagination(c))

	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"summary": SummarizePayments(filtered),
		"actions": actionsByID(rows, func(p models.Payment) string { return p.ID }, PaymentActions),
	})
}

// Stats relays the backend payment summary.
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	var stats map[string]any
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathPaymentStats, nil, &stats); err != nil {
		return err
	}
	return dataResponse(c, stats)
}

type refundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// Refund refunds a payment.
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req refundRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	if req.Amount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}

	body := fiber.Map{"reason": req.Reason}
	if req.Amount.IsPositive() {
		body["amount"] = req.Amount
	}
	resp, err := h.send(c, http.MethodPost, services.PaymentRefundPath(id), body)
	if err != nil {
		return err
	}
	h.notify(c, "payment", "Payment "+id+" refunded")
	return relay(c, resp, "payment refunded")
}

// Export downloads the filtered payments.
func (h *PaymentHandler) Export(c *fiber.Ctx) error {
	var f filters.Payments
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	payments, err := h.fetchPayments(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Payments",
		Sheet:   "Payments",
		Headers: []string{"Payment ID", "Order ID", "Member", "Email", "Amount", "Method", "Status", "Date"},
	}
	for _, p := range filters.Apply(payments, f.Match) {
		t.Rows = append(t.Rows, []any{p.ID, p.OrderID, p.Member, p.MemberEmail, p.Amount, p.Method, p.Status, models.DisplayDate(p.CreatedAt)})
	}
	return sendExport(c, export.StemPayments, t)
}
