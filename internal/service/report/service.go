package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/event"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/repository"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateReportInput) (*domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input domain.UpdateReportStatusInput) (*domain.Report, error)
	ListMatches(ctx context.Context, id uuid.UUID) ([]domain.Match, error)
}

type service struct {
	reportRepo repository.ReportRepository
	matchRepo  repository.MatchRepository
	publisher  event.Publisher
	log        *logger.Logger
}

func NewService(reportRepo repository.ReportRepository, matchRepo repository.MatchRepository, publisher event.Publisher, log *logger.Logger) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		reportRepo: reportRepo,
		matchRepo:  matchRepo,
		publisher:  publisher,
		log:        log,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateReportInput) (*domain.Report, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:          uuid.New(),
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Color:       input.Color,
		Location:    input.Location,
		UserID:      userID,
		Status:      domain.StatusProcessing,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	// The report is stored either way; trigger failures are logged, not returned.
	if err := s.publisher.Publish(ctx, event.ReportCreated{Report: *report}); err != nil {
		s.log.Error("Report created triggers failed", "report_id", report.ID, "error", err)
	}

	return report, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input domain.UpdateReportStatusInput) (*domain.Report, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	before, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if before.Status == input.Status {
		return before, nil
	}
	if !before.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, before.Status, input.Status)
	}

	after := *before
	after.Status = input.Status
	if err := s.reportRepo.UpdateStatus(ctx, &after); err != nil {
		return nil, fmt.Errorf("update report %s status: %w", id, err)
	}

	if err := s.publisher.Publish(ctx, event.ReportUpdated{Before: *before, After: after}); err != nil {
		s.log.Error("Report updated triggers failed", "report_id", id, "status", after.Status, "error", err)
	}

	return &after, nil
}

func (s *service) ListMatches(ctx context.Context, id uuid.UUID) ([]domain.Match, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.matchRepo.ListByReport(ctx, id)
}
