package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"lost-found/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_id, action, entity_type, entity_id, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.Action, log.EntityType, log.EntityID, nullJSON(log.OldValue), nullJSON(log.NewValue),
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	count := sqlbuilder.PostgreSQL.NewSelectBuilder()
	count.Select("COUNT(*)").From("audit_logs")
	count.Where(count.Equal("entity_type", entityType), count.Equal("entity_id", entityID))

	countQuery, countArgs := count.Build()
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"audit_id", "action", "entity_type", "entity_id",
		"COALESCE(old_value, 'null'::jsonb) AS old_value",
		"COALESCE(new_value, 'null'::jsonb) AS new_value",
		"created_at",
	)
	sb.From("audit_logs")
	sb.Where(sb.Equal("entity_type", entityType), sb.Equal("entity_id", entityID))
	sb.OrderBy("created_at").Desc()
	sb.Limit(params.PageSize).Offset(params.Offset())

	query, args := sb.Build()
	logs := []domain.AuditLog{}
	err := r.db.SelectContext(ctx, &logs, query, args...)
	return logs, total, err
}

// CreateAuditLog marshals the before/after values and stores the entry.
func CreateAuditLog(ctx context.Context, repo AuditLogRepository, input domain.CreateAuditLogInput) error {
	oldValue, err := marshalValue(input.OldValue)
	if err != nil {
		return fmt.Errorf("marshal old value: %w", err)
	}
	newValue, err := marshalValue(input.NewValue)
	if err != nil {
		return fmt.Errorf("marshal new value: %w", err)
	}

	return repo.Create(ctx, &domain.AuditLog{
		ID:         uuid.New(),
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

func marshalValue(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// nullJSON stores an absent value as SQL NULL rather than an empty jsonb.
func nullJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
