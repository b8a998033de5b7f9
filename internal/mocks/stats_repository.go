package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lost-found/internal/domain"
)

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) CountReports(ctx context.Context) ([]domain.ReportCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportCount), args.Error(1)
}

func (m *StatsRepository) CountMatches(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepository) GetLastActivityAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
