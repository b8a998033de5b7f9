package handler

import (
	"github.com/gofiber/fiber/v2"

	"lost-found/internal/middleware"
	"lost-found/internal/service/auth"
)

func RegisterRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	protected := v1.Group("", middleware.AuthRequired(authService))

	reports := protected.Group("/reports")
	reports.Post("/", h.Report.Create)
	reports.Get("/:id", h.Report.Get)
	reports.Patch("/:id/status", middleware.RequireRole(auth.RoleStaff), h.Report.UpdateStatus)
	reports.Get("/:id/matches", h.Report.ListMatches)
	reports.Get("/:id/history", h.Audit.History)

	dashboard := protected.Group("/dashboard", middleware.RequireRole(auth.RoleStaff))
	dashboard.Get("/stats", h.Dashboard.GetStats)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
}
