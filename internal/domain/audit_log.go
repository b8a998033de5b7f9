package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionReportCreated = "report.created"
	AuditActionStatusChanged = "report.status_changed"
	AuditActionMatchCreated  = "match.created"

	AuditEntityReport = "report"
)

// AuditLog is one entry of a report's activity history. Entries are written by
// the system in reaction to lifecycle events, so there is no acting user.
type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"audit_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	OldValue   json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"new_value,omitempty" db:"new_value"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type CreateAuditLogInput struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
}
