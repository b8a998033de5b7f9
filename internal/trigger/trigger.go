// Package trigger wires lifecycle events to the matching and notification
// services.
package trigger

import (
	"context"
	"errors"

	"lost-found/internal/domain"
	"lost-found/internal/event"
	"lost-found/internal/pkg/logger"
)

type Matcher interface {
	FindMatches(ctx context.Context, report *domain.Report) (int, error)
}

type Notifier interface {
	NotifyReportCreated(ctx context.Context, report *domain.Report) error
	NotifyStatusChanged(ctx context.Context, before, after *domain.Report) error
	NotifyMatchCreated(ctx context.Context, match *domain.Match) error
}

// Register subscribes the handlers. A new report is both announced to its
// owner and matched; the two are independent and both always run.
func Register(bus event.Subscriber, matcher Matcher, notifier Notifier, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	bus.OnReportCreated(func(ctx context.Context, e event.ReportCreated) error {
		report := e.Report

		notifyErr := notifier.NotifyReportCreated(ctx, &report)
		if notifyErr != nil {
			log.Error("Report created notification failed", "report_id", report.ID, "error", notifyErr)
		}

		n, matchErr := matcher.FindMatches(ctx, &report)
		if matchErr != nil {
			log.Error("Match scan failed", "report_id", report.ID, "written", n, "error", matchErr)
		}

		return errors.Join(notifyErr, matchErr)
	})

	bus.OnReportUpdated(func(ctx context.Context, e event.ReportUpdated) error {
		before, after := e.Before, e.After
		if err := notifier.NotifyStatusChanged(ctx, &before, &after); err != nil {
			log.Error("Status change notification failed", "report_id", after.ID, "status", after.Status, "error", err)
			return err
		}
		return nil
	})

	bus.OnMatchCreated(func(ctx context.Context, e event.MatchCreated) error {
		match := e.Match
		if err := notifier.NotifyMatchCreated(ctx, &match); err != nil {
			log.Error("Match notification failed", "match_id", match.ID, "error", err)
			return err
		}
		return nil
	})
}

type Recorder interface {
	RecordReportCreated(ctx context.Context, report *domain.Report) error
	RecordStatusChanged(ctx context.Context, before, after *domain.Report) error
	RecordMatchCreated(ctx context.Context, match *domain.Match) error
}

// RegisterHistory subscribes the activity recorder. Its failures are logged and
// never returned: a failed event is redelivered to every handler, pushes included.
func RegisterHistory(bus event.Subscriber, recorder Recorder, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	bus.OnReportCreated(func(ctx context.Context, e event.ReportCreated) error {
		report := e.Report
		if err := recorder.RecordReportCreated(ctx, &report); err != nil {
			log.Warn("Failed to record report creation", "report_id", report.ID, "error", err)
		}
		return nil
	})

	bus.OnReportUpdated(func(ctx context.Context, e event.ReportUpdated) error {
		before, after := e.Before, e.After
		if err := recorder.RecordStatusChanged(ctx, &before, &after); err != nil {
			log.Warn("Failed to record status change", "report_id", after.ID, "error", err)
		}
		return nil
	})

	bus.OnMatchCreated(func(ctx context.Context, e event.MatchCreated) error {
		match := e.Match
		if err := recorder.RecordMatchCreated(ctx, &match); err != nil {
			log.Warn("Failed to record match", "match_id", match.ID, "error", err)
		}
		return nil
	})
}
