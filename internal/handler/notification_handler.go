package handler

import (
	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	status := domain.NotificationStatusFilter(c.Query("status"))
	result, err := h.notifService.List(c.UserContext(), actor, status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.UserContext(), actor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "notification")
	if err != nil {
		return err
	}

	notif, err := h.notifService.MarkAsRead(c.UserContext(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(notif)
}

func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "notification")
	if err != nil {
		return err
	}

	notif, err := h.notifService.Dismiss(c.UserContext(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(notif)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllAsRead(c.UserContext(), actor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"updated": updated})
}

// CheckFollowUps runs the reconciliation for the caller and reports how many
// notifications it created.
func (h *NotificationHandler) CheckFollowUps(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	created, err := h.notifService.CheckFollowUps(c.UserContext(), actor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"created": created})
}
