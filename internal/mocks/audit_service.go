package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lost-found/internal/domain"
)

type AuditService struct {
	mock.Mock
}

func (m *AuditService) History(ctx context.Context, reportID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	args := m.Called(ctx, reportID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AuditLog]), args.Error(1)
}

func (m *AuditService) RecordReportCreated(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *AuditService) RecordStatusChanged(ctx context.Context, before, after *domain.Report) error {
	args := m.Called(ctx, before, after)
	return args.Error(0)
}

func (m *AuditService) RecordMatchCreated(ctx context.Context, match *domain.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}
