package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/middleware"
	"lost-found/internal/service/auth"
	"lost-found/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetCurrentUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	r, err := h.reportService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	r, err := loadVisibleReport(c, h.reportService)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid report ID")
	}

	var input domain.UpdateReportStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	r, err := h.reportService.UpdateStatus(c.Context(), id, input)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

func (h *ReportHandler) ListMatches(c *fiber.Ctx) error {
	r, err := loadVisibleReport(c, h.reportService)
	if err != nil {
		return err
	}

	matches, err := h.reportService.ListMatches(c.Context(), r.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": matches})
}

// loadVisibleReport returns the report in the path if the caller owns it or is staff.
func loadVisibleReport(c *fiber.Ctx, reportService report.Service) (*domain.Report, error) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil, middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, middleware.BadRequest("Invalid report ID")
	}

	r, err := reportService.GetByID(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if r.UserID != claims.UserID && !claims.HasRole(auth.RoleStaff) {
		return nil, domain.ErrNotReportOwner
	}
	return r, nil
}
