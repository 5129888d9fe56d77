package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Lead         *LeadHandler
	Notification *NotificationHandler
	Settings     *SettingsHandler
	Export       *ExportHandler
	Dashboard    *DashboardHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Lead:         NewLeadHandler(services.Lead),
		Notification: NewNotificationHandler(services.Notification),
		Settings:     NewSettingsHandler(services.Settings),
		Export:       NewExportHandler(services.Export),
		Dashboard:    NewDashboardHandler(services.Dashboard),
	}
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return nil, middleware.Unauthorized("User not authenticated")
	}
	return user, nil
}

func paramID(c *fiber.Ctx, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}
	params.Normalize()
	return params
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
