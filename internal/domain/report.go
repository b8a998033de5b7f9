package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportTypeMissing ReportType = "missing"
	ReportTypeFound   ReportType = "found"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeMissing, ReportTypeFound:
		return true
	}
	return false
}

// Opposite returns the type a report is matched against, or "" for unknown types.
func (t ReportType) Opposite() ReportType {
	switch t {
	case ReportTypeMissing:
		return ReportTypeFound
	case ReportTypeFound:
		return ReportTypeMissing
	}
	return ""
}

type ReportStatus string

const (
	StatusProcessing        ReportStatus = "processing"
	StatusMatched           ReportStatus = "matched"
	StatusDeliveredToClient ReportStatus = "delivered_to_client"
	StatusReceived          ReportStatus = "received"
	StatusClosed            ReportStatus = "closed"
	StatusRejected          ReportStatus = "rejected"

	// StatusDelivered is a legacy value still present on old reports. It has a label
	// but no transitions.
	StatusDelivered ReportStatus = "delivered"
)

var statusTransitions = map[ReportStatus][]ReportStatus{
	StatusProcessing:        {StatusMatched, StatusRejected},
	StatusMatched:           {StatusDeliveredToClient, StatusReceived},
	StatusDeliveredToClient: {StatusClosed},
	StatusReceived:          {StatusClosed},
}

func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusProcessing, StatusMatched, StatusDeliveredToClient, StatusReceived,
		StatusClosed, StatusRejected, StatusDelivered:
		return true
	}
	return false
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Report struct {
	ID          uuid.UUID    `json:"id" db:"report_id"`
	Type        ReportType   `json:"type" db:"type"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Category    string       `json:"category" db:"category"`
	Color       string       `json:"color" db:"color"`
	Location    string       `json:"location" db:"location"`
	UserID      uuid.UUID    `json:"user_id" db:"user_id"`
	Status      ReportStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateReportInput struct {
	Type        ReportType `json:"type" validate:"required,oneof=missing found"`
	Title       string     `json:"title" validate:"max=200"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"required"`
	Color       string     `json:"color" validate:"required"`
	Location    string     `json:"location" validate:"required"`
}

func (in CreateReportInput) Validate() error {
	if !in.Type.IsValid() {
		return ErrInvalidReportType
	}
	if in.Category == "" || in.Color == "" || in.Location == "" {
		return ErrMissingReportFields
	}
	return nil
}

type UpdateReportStatusInput struct {
	Status ReportStatus `json:"status" validate:"required"`
}

// CandidateQuery selects reports by exact, case-sensitive field equality.
type CandidateQuery struct {
	Type     ReportType
	Status   ReportStatus
	Category string
	Color    string
	Location string
}

// ReportCount is one (type, status) bucket of the report totals.
type ReportCount struct {
	Type   ReportType   `db:"type"`
	Status ReportStatus `db:"status"`
	Count  int64        `db:"count"`
}
