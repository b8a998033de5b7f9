package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match links a missing report (OriginalReportID) to a found report (MatchedWith).
// Title and UserID are copied from the missing side regardless of which report
// triggered the discovery.
type Match struct {
	ID               uuid.UUID `json:"id" db:"match_id"`
	Title            string    `json:"title" db:"title"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	MatchedWith      uuid.UUID `json:"matched_with" db:"matched_with"`
	OriginalReportID uuid.UUID `json:"original_report_id" db:"original_report_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
