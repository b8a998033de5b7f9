package handler

import (
	"github.com/gofiber/fiber/v2"

	"lost-found/internal/domain"
	"lost-found/internal/service/audit"
	"lost-found/internal/service/report"
)

type AuditHandler struct {
	reportService report.Service
	auditService  audit.Service
}

func NewAuditHandler(reportService report.Service, auditService audit.Service) *AuditHandler {
	return &AuditHandler{reportService: reportService, auditService: auditService}
}

func (h *AuditHandler) History(c *fiber.Ctx) error {
	r, err := loadVisibleReport(c, h.reportService)
	if err != nil {
		return err
	}

	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	history, err := h.auditService.History(c.Context(), r.ID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(history)
}
