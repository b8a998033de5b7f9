package repository

import (
	"context"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"lost-found/internal/domain"
)

type StatsRepository interface {
	CountReports(ctx context.Context) ([]domain.ReportCount, error)
	CountMatches(ctx context.Context) (int64, error)
	GetLastActivityAt(ctx context.Context) (*time.Time, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountReports(ctx context.Context) ([]domain.ReportCount, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("type", "status", "COUNT(*) AS count")
	sb.From("reports")
	sb.GroupBy("type", "status")

	query, args := sb.Build()

	counts := []domain.ReportCount{}
	err := r.db.SelectContext(ctx, &counts, query, args...)
	return counts, err
}

func (r *statsRepository) CountMatches(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM matches`)
	return count, err
}

func (r *statsRepository) GetLastActivityAt(ctx context.Context) (*time.Time, error) {
	var last *time.Time
	err := r.db.GetContext(ctx, &last, `SELECT MAX(updated_at) FROM reports`)
	return last, err
}
