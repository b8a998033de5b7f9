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

type MatchRepository interface {
	// Exists reports whether a match with this exact (original, matchedWith) ordering exists.
	Exists(ctx context.Context, originalReportID, matchedWith uuid.UUID) (bool, error)
	// Create inserts the match unless the ordered pair is already taken and reports
	// whether a row was written.
	Create(ctx context.Context, match *domain.Match) (bool, error)
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.Match, error)
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Exists(ctx context.Context, originalReportID, matchedWith uuid.UUID) (bool, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("1")
	sb.From("matches")
	sb.Where(
		sb.Equal("original_report_id", originalReportID),
		sb.Equal("matched_with", matchedWith),
	)

	inner, args := sb.Build()

	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS("+inner+")", args...)
	return exists, err
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) (bool, error) {
	query := `
		INSERT INTO matches (match_id, title, user_id, matched_with, original_report_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (original_report_id, matched_with) DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		match.ID, match.Title, match.UserID, match.MatchedWith, match.OriginalReportID,
	).Scan(&match.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *matchRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.Match, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("match_id", "title", "user_id", "matched_with", "original_report_id", "created_at")
	sb.From("matches")
	sb.Where(sb.Or(
		sb.Equal("original_report_id", reportID),
		sb.Equal("matched_with", reportID),
	))
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()

	matches := []domain.Match{}
	err := r.db.SelectContext(ctx, &matches, query, args...)
	return matches, err
}
