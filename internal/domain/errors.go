package domain

import "errors"

var (
	ErrReportNotFound          = errors.New("report not found")
	ErrInvalidReportType       = errors.New("report type must be missing or found")
	ErrMissingReportFields     = errors.New("category, color and location are required")
	ErrInvalidStatus           = errors.New("unknown report status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrNotReportOwner          = errors.New("report belongs to another user")
	ErrNotificationNotFound    = errors.New("notification not found")
)
