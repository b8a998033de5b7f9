package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lost-found/internal/domain"
)

type MatchRepository struct {
	mock.Mock
}

func (m *MatchRepository) Exists(ctx context.Context, originalReportID, matchedWith uuid.UUID) (bool, error) {
	args := m.Called(ctx, originalReportID, matchedWith)
	return args.Bool(0), args.Error(1)
}

func (m *MatchRepository) Create(ctx context.Context, match *domain.Match) (bool, error) {
	args := m.Called(ctx, match)
	return args.Bool(0), args.Error(1)
}

func (m *MatchRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.Match, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}
