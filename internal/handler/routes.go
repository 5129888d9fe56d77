package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, health *HealthHandler, authService auth.Service) {
	if health != nil {
		app.Get("/health", health.Health)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	account := protected.Group("/auth")
	account.Get("/me", h.Auth.Me)
	account.Post("/register", middleware.RequireAdmin(), h.User.Register)
	account.Get("/users", middleware.RequireAdmin(), h.User.List)
	account.Put("/users/:id", h.User.Update)

	protected.Get("/dashboard/stats", h.Dashboard.GetStats)

	leads := protected.Group("/leads")
	leads.Get("/export", h.Export.ExportLeads)
	leads.Post("/", h.Lead.Create)
	leads.Get("/", h.Lead.List)
	leads.Get("/:id", h.Lead.Get)
	leads.Put("/:id", h.Lead.Update)
	leads.Delete("/:id", h.Lead.Delete)
	leads.Post("/:id/notes", h.Lead.AddNote)
	leads.Get("/:id/notes", h.Lead.ListNotes)
	leads.Put("/:id/notes/:noteId", h.Lead.UpdateNote)
	leads.Get("/:id/activities", h.Lead.ListActivities)
	leads.Post("/:id/emails", h.Lead.LogEmail)
	leads.Get("/:id/emails", h.Lead.ListEmails)
	leads.Post("/:id/send-email", h.Lead.SendEmail)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/check-follow-ups", h.Notification.CheckFollowUps)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/mark-as-read", h.Notification.MarkAsRead)
	notifications.Put("/:id/dismiss", h.Notification.Dismiss)

	settings := protected.Group("/settings")
	settings.Get("/", middleware.RequireAdmin(), h.Settings.List)
	settings.Post("/", middleware.RequireAdmin(), h.Settings.Update)
	settings.Post("/initialize", middleware.RequireAdmin(), h.Settings.Initialize)
	settings.Get("/:key", h.Settings.Get)
}
