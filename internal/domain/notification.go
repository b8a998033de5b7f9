package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Body      string           `json:"body" db:"body"`
	Action    *string          `json:"action,omitempty" db:"action"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifReportRegistered     NotificationType = "REPORT_REGISTERED"
	NotifDeliveryInstructions NotificationType = "DELIVERY_INSTRUCTIONS"
	NotifStatusChanged        NotificationType = "STATUS_CHANGED"
	NotifMatchFound           NotificationType = "MATCH_FOUND"
	NotifMatchedWithMissing   NotificationType = "MATCHED_WITH_MISSING"
)
