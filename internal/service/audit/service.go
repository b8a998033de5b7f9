// Package audit keeps the activity history of reports.
package audit

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/repository"
)

type Service interface {
	History(ctx context.Context, reportID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	RecordReportCreated(ctx context.Context, report *domain.Report) error
	RecordStatusChanged(ctx context.Context, before, after *domain.Report) error
	// RecordMatchCreated writes one entry on each side of the match.
	RecordMatchCreated(ctx context.Context, match *domain.Match) error
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

type statusValue struct {
	Status domain.ReportStatus `json:"status"`
}

type createdValue struct {
	Type   domain.ReportType   `json:"type"`
	Status domain.ReportStatus `json:"status"`
}

type matchValue struct {
	MatchID          uuid.UUID `json:"match_id"`
	OriginalReportID uuid.UUID `json:"original_report_id"`
	MatchedWith      uuid.UUID `json:"matched_with"`
}

func (s *service) History(ctx context.Context, reportID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()

	logs, total, err := s.auditRepo.ListByEntity(ctx, domain.AuditEntityReport, reportID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) RecordReportCreated(ctx context.Context, report *domain.Report) error {
	return repository.CreateAuditLog(ctx, s.auditRepo, domain.CreateAuditLogInput{
		Action:     domain.AuditActionReportCreated,
		EntityType: domain.AuditEntityReport,
		EntityID:   report.ID,
		NewValue:   createdValue{Type: report.Type, Status: report.Status},
	})
}

func (s *service) RecordStatusChanged(ctx context.Context, before, after *domain.Report) error {
	if before.Status == after.Status {
		return nil
	}

	return repository.CreateAuditLog(ctx, s.auditRepo, domain.CreateAuditLogInput{
		Action:     domain.AuditActionStatusChanged,
		EntityType: domain.AuditEntityReport,
		EntityID:   after.ID,
		OldValue:   statusValue{Status: before.Status},
		NewValue:   statusValue{Status: after.Status},
	})
}

func (s *service) RecordMatchCreated(ctx context.Context, match *domain.Match) error {
	value := matchValue{
		MatchID:          match.ID,
		OriginalReportID: match.OriginalReportID,
		MatchedWith:      match.MatchedWith,
	}

	var errs []error
	for _, reportID := range []uuid.UUID{match.OriginalReportID, match.MatchedWith} {
		if reportID == uuid.Nil {
			continue
		}
		err := repository.CreateAuditLog(ctx, s.auditRepo, domain.CreateAuditLogInput{
			Action:     domain.AuditActionMatchCreated,
			EntityType: domain.AuditEntityReport,
			EntityID:   reportID,
			NewValue:   value,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
