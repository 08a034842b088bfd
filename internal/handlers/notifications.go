package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/mlmadmin/internal/middleware"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
)

const notificationLimit = 50

// NotificationHandler serves the notification bell and sidebar badges.
type NotificationHandler struct {
	notes   store.Notifications
	backend *services.Backend
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notes store.Notifications, backend *services.Backend) *NotificationHandler {
	return &NotificationHandler{notes: notes, backend: backend}
}

func currentAdmin(c *fiber.Ctx) (string, error) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return claims.AdminID, nil
}

// List returns the latest notifications and the unread count.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	limit := notificationLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v < limit {
		limit = v
	}

	ctx := c.UserContext()
	list, err := h.notes.ListNotifications(ctx, adminID, limit)
	if err != nil {
		return err
	}
	unread, err := h.notes.UnreadCount(ctx, adminID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    list,
		"unread":  unread,
	})
}

// ReadAll marks every notification read.
func (h *NotificationHandler) ReadAll(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	if err := h.notes.MarkAllRead(c.UserContext(), adminID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "unread": 0})
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}
	if err := h.notes.DeleteNotification(c.UserContext(), adminID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "notification not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Clear removes every notification of the admin.
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	if err := h.notes.ClearNotifications(c.UserContext(), adminID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Badges returns the sidebar counters. A failed payout read leaves that
// badge at zero.
func (h *NotificationHandler) Badges(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	unread, err := h.notes.UnreadCount(ctx, adminID)
	if err != nil {
		return err
	}

	errs := fiber.Map{}
	payouts := 0
	reqs, err := fetchRedeemRequests(ctx, h.backend, token(c))
	if err != nil {
		errs["payouts"] = errorText(err)
	} else {
		payouts = PendingPayouts(reqs)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"notifications":  unread,
			"pendingPayouts": payouts,
		},
		"errors": errs,
	})
}
