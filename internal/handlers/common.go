package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/middleware"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// NetworkErrorMessage is shown when the backend cannot be reached.
const NetworkErrorMessage = "Network error. Please check your connection."

// MalformedResponseMessage is shown when a backend reply cannot be decoded.
const MalformedResponseMessage = "Unexpected response from the backend."

// ErrorHandler renders every error as {"success": false, "error": msg}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	var be *services.BackendError
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.As(err, &be):
		code, msg = backendStatus(be.Status), be.Message
	case errors.Is(err, services.ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		code, msg = fiber.StatusBadGateway, NetworkErrorMessage
	case errors.Is(err, services.ErrMalformed):
		code, msg = fiber.StatusBadGateway, MalformedResponseMessage
		log.Printf("[Handler] %s %s: %v", c.Method(), c.Path(), err)
	default:
		log.Printf("[Handler] %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func backendStatus(status int) int {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return status
	}
	return fiber.StatusBadGateway
}

// errorText is the message a failed page part reports in its errors map.
func errorText(err error) string {
	var be *services.BackendError
	switch {
	case errors.As(err, &be):
		return be.Message
	case errors.Is(err, services.ErrNetwork):
		return NetworkErrorMessage
	case errors.Is(err, services.ErrMalformed):
		return MalformedResponseMessage
	}
	return err.Error()
}

var now = time.Now

// base carries the dependencies shared by every page handler.
type base struct {
	backend *services.Backend
	notes   store.Notifications
	cfg     *config.Config
}

func newBase(backend *services.Backend, notes store.Notifications, cfg *config.Config) base {
	return base{backend: backend, notes: notes, cfg: cfg}
}

func (b base) pagination(c *fiber.Ctx) utils.Pagination {
	return utils.ParsePagination(c, b.cfg.DefaultPageSize, b.cfg.MaxPageSize)
}

// send relays a mutating call with the session's backend token.
func (b base) send(c *fiber.Ctx, method, path string, body any) (*services.Response, error) {
	return b.backend.Send(c.UserContext(), middleware.BackendToken(c), method, path, body)
}

// notify records an entry in the current admin's notification list.
func (b base) notify(c *fiber.Ctx, kind, message string) {
	if b.notes == nil {
		return
	}
	claims, ok := middleware.GetSession(c)
	if !ok {
		return
	}
	n := &models.Notification{AdminID: claims.AdminID, Kind: kind, Message: message}
	if err := b.notes.AddNotification(c.UserContext(), n); err != nil {
		log.Printf("[Notify] failed to record %s notification: %v", kind, err)
	}
}

func adminName(c *fiber.Ctx) string {
	if claims, ok := middleware.GetSession(c); ok {
		return claims.Username
	}
	return "admin"
}

func token(c *fiber.Ctx) string {
	return middleware.BackendToken(c)
}

func listResponse(c *fiber.Ctx, rows any, meta utils.Meta, extra fiber.Map) error {
	body := fiber.Map{
		"success":    true,
		"data":       rows,
		"pagination": meta,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func dataResponse(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// relay returns the backend's JSON payload unchanged inside a success
// envelope.
func relay(c *fiber.Ctx, resp *services.Response, message string) error {
	var data any
	if resp != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			data = nil
		}
	}
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(body)
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

func requireParam(c *fiber.Ctx, name string) (string, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return v, nil
}

// sendExport writes the table as xlsx (default) or pdf.
func sendExport(c *fiber.Ctx, stem string, t export.Table) error {
	format := strings.ToLower(c.Query("format", "xlsx"))

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = export.ExcelBytes(t)
		contentType = export.ContentTypeExcel
	case "pdf":
		data, err = export.PDFBytes(t)
		contentType = export.ContentTypePDF
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be xlsx or pdf")
	}
	if err != nil {
		return err
	}

	c.Attachment(export.Filename(stem, format))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
