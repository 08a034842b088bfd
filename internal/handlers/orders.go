package handlers

import (
	"context"
	"net/http"
	"strconv"
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

// OrderHandler serves the orders page.
type OrderHandler struct {
	base
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *OrderHandler {
	return &OrderHandler{base: newBase(backend, notes, cfg)}
}

func (h *OrderHandler) fetchOrders(ctx context.Context, tok string) ([]models.Order, error) {
	rows, _, err := services.FetchList[models.BackendOrder](ctx, h.backend, tok, services.PathOrderDetails, nil, "orders", "orderDetails")
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.ToOrder())
	}
	return orders, nil
}

// OrderSummary is the orders page card block.
type OrderSummary struct {
	TotalOrders int             `json:"totalOrders"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ByStatus    map[string]int  `json:"byStatus"`
}

func summarizeOrders(orders []models.Order) OrderSummary {
	s := OrderSummary{TotalAmount: decimal.Zero, ByStatus: map[string]int{}}
	for _, o := range orders {
		s.TotalOrders++
		s.TotalAmount = s.TotalAmount.Add(o.TotalAmount)
		s.ByStatus[o.Status]++
	}
	return s
}

// List returns filtered, paginated orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f filters.Orders
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	orders, err := h.fetchOrders(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	filtered := filters.Apply(orders, f.Match)
	rows, meta := utils.Paginate(filtered, h.pagination(c))

	return listResponse(c, rows, meta, fiber.Map{
		"filters":  f,
		"summary":  summarizeOrders(filtered),
		"statuses": append([]string{filters.All}, models.OrderStatuses...),
		"actions":  actionsByID(rows, func(o models.Order) string { return o.ID }, OrderActions),
	})
}

// Stats relays the backend order summary, falling back to a summary of
// the order list.
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	var stats map[string]any
	err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathOrderStats, nil, &stats)
	if err == nil && len(stats) > 0 {
		return dataResponse(c, stats)
	}

	orders, ferr := h.fetchOrders(c.UserContext(), token(c))
	if ferr != nil {
		if err != nil {
			return err
		}
		return ferr
	}
	return dataResponse(c, summarizeOrders(orders))
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func canonicalOrderStatus(status string) (string, bool) {
	for _, s := range models.OrderStatuses {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			return s, true
		}
	}
	return "", false
}

// UpdateStatus changes an order's status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req orderStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	status, ok := canonicalOrderStatus(req.Status)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "unknown order status")
	}

	if _, err := h.send(c, http.MethodPut, services.OrderStatusPath(id), fiber.Map{"status": status}); err != nil {
		return err
	}
	h.notify(c, "order", "Order #"+id+" marked "+status)
	return dataResponse(c, fiber.Map{"id": id, "status": status})
}

type trackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
}

// UpdateTracking sets an order's tracking number.
func (h *OrderHandler) UpdateTracking(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req trackingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.TrackingNumber) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "trackingNumber is required")
	}

	resp, err := h.send(c, http.MethodPut, services.OrderTrackingPath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "order", "Tracking added to order #"+id)
	return relay(c, resp, "tracking updated")
}

type orderReasonRequest struct {
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

// Cancel cancels an order.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req orderReasonRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	resp, err := h.send(c, http.MethodPost, services.OrderCancelPath(id), fiber.Map{"reason": req.Reason})
	if err != nil {
		return err
	}
	h.notify(c, "order", "Order #"+id+" cancelled")
	return relay(c, resp, "order cancelled")
}

// Refund refunds an order, fully or by the given amount.
func (h *OrderHandler) Refund(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req orderReasonRequest
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
	resp, err := h.send(c, http.MethodPost, services.OrderRefundPath(id), body)
	if err != nil {
		return err
	}
	h.notify(c, "order", "Refund issued for order #"+id)
	return relay(c, resp, "order refunded")
}

// Export downloads the filtered orders.
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	var f filters.Orders
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	orders, err := h.fetchOrders(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Orders",
		Sheet:   "Orders",
		Headers: []string{"Order", "Customer", "Products", "Total Amount", "Status", "Type", "Order Date", "Tracking"},
	}
	for _, o := range filters.Apply(orders, f.Match) {
		t.Rows = append(t.Rows, []any{o.OrderNumber, o.Customer, productNames(o.Products), o.TotalAmount, o.Status, o.Type, o.OrderDate, o.TrackingNumber})
	}
	return sendExport(c, export.StemOrders, t)
}

func productNames(items []models.OrderItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		names = append(names, it.Name+" x"+strconv.Itoa(it.Quantity))
	}
	return strings.Join(names, ", ")
}
