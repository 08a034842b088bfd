package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// KYCHandler serves the verification queue.
type KYCHandler struct {
	base
}

// NewKYCHandler constructs KYCHandler.
func NewKYCHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *KYCHandler {
	return &KYCHandler{base: newBase(backend, notes, cfg)}
}

func (h *KYCHandler) fetchRecords(ctx context.Context, tok string) ([]models.KYCRecord, error) {
	list, _, err := services.FetchList[models.KYCRecord](ctx, h.backend, tok, services.PathKYC, nil, "kyc", "records")
	return list, err
}

// List returns the filtered queue with per-status counts.
func (h *KYCHandler) List(c *fiber.Ctx) error {
	var f filters.KYC
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	records, err := h.fetchRecords(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	counts := map[string]int{models.KYCPending: 0, models.KYCApproved: 0, models.KYCRejected: 0}
	for _, r := range records {
		counts[r.Status]++
	}

	rows, meta := utils.Paginate(filters.Apply(records, f.Match), h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"counts":  counts,
		"actions": actionsByID(rows, func(k models.KYCRecord) string { return k.ID.String() }, KYCActions),
	})
}

// Approve approves one submission.
func (h *KYCHandler) Approve(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, services.KYCApprovePath(id), nil)
	if err != nil {
		return err
	}
	h.notify(c, "kyc", "KYC "+id+" approved")
	return relay(c, resp, "kyc approved")
}

type kycRejectRequest struct {
	Remarks string `json:"remarks"`
}

// Reject rejects one submission. Remarks are required.
func (h *KYCHandler) Reject(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req kycRejectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Remarks = strings.TrimSpace(req.Remarks)
	if req.Remarks == "" {
		return fiber.NewError(fiber.StatusBadRequest, "remarks are required")
	}
	resp, err := h.send(c, http.MethodPost, services.KYCRejectPath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "kyc", "KYC "+id+" rejected")
	return relay(c, resp, "kyc rejected")
}

type kycBulkRequest struct {
	IDs     []models.FlexID `json:"ids"`
	Remarks string          `json:"remarks,omitempty"`
}

// BulkApprove approves several submissions at once.
func (h *KYCHandler) BulkApprove(c *fiber.Ctx) error {
	return h.bulk(c, models.KYCApproved)
}

// BulkReject rejects several submissions at once.
func (h *KYCHandler) BulkReject(c *fiber.Ctx) error {
	return h.bulk(c, models.KYCRejected)
}

func (h *KYCHandler) bulk(c *fiber.Ctx, status string) error {
	var req kycBulkRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if len(req.IDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ids are required")
	}
	req.Remarks = strings.TrimSpace(req.Remarks)
	if status == models.KYCRejected && req.Remarks == "" {
		return fiber.NewError(fiber.StatusBadRequest, "remarks are required")
	}

	body := fiber.Map{"ids": req.IDs, "status": status}
	if req.Remarks != "" {
		body["remarks"] = req.Remarks
	}
	resp, err := h.send(c, http.MethodPost, services.PathKYCBulk, body)
	if err != nil {
		return err
	}
	h.notify(c, "kyc", fmt.Sprintf("%d KYC submissions %s", len(req.IDs), strings.ToLower(status)))
	return relay(c, resp, "kyc "+strings.ToLower(status))
}

// Export downloads the filtered queue.
func (h *KYCHandler) Export(c *fiber.Ctx) error {
	var f filters.KYC
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	records, err := h.fetchRecords(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "KYC Verification",
		Sheet:   "KYC",
		Headers: []string{"ID", "Member", "Document", "Document Number", "Uploaded", "Status", "Remarks"},
	}
	for _, k := range filters.Apply(records, f.Match) {
		t.Rows = append(t.Rows, []any{k.ID.String(), k.Member, k.Doc, k.DocNumber, models.DisplayDate(k.Upload), k.Status, k.Remarks})
	}
	return sendExport(c, export.StemKYC, t)
}
