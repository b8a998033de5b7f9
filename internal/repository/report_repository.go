package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"lost-found/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	UpdateStatus(ctx context.Context, report *domain.Report) error
	FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.Report, error)
}

var reportColumns = []string{
	"report_id", "type", "title", "description", "category", "color", "location",
	"user_id", "status", "created_at", "updated_at",
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (report_id, type, title, description, category, color, location, user_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.Type, report.Title, report.Description, report.Category,
		report.Color, report.Location, report.UserID, report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reportColumns...)
	sb.From("reports")
	sb.Where(sb.Equal("report_id", id))

	query, args := sb.Build()

	var report domain.Report
	err := r.db.GetContext(ctx, &report, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET status = $2, updated_at = NOW()
		WHERE report_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, report.ID, report.Status).Scan(&report.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrReportNotFound
	}
	return err
}

func (r *reportRepository) FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.Report, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reportColumns...)
	sb.From("reports")
	sb.Where(
		sb.Equal("type", q.Type),
		sb.Equal("status", q.Status),
		sb.Equal("category", q.Category),
		sb.Equal("color", q.Color),
		sb.Equal("location", q.Location),
	)
	sb.OrderBy("created_at").Asc()

	query, args := sb.Build()

	var reports []domain.Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, err
	}
	return reports, nil
}
