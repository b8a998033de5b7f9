package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/repository"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyReportCreated(ctx context.Context, report *domain.Report) error
	NotifyStatusChanged(ctx context.Context, before, after *domain.Report) error
	NotifyMatchCreated(ctx context.Context, match *domain.Match) error
}

type service struct {
	notifRepo  repository.NotificationRepository
	reportRepo repository.ReportRepository
	composer   *Composer
	dispatcher *Dispatcher
	log        *logger.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	reportRepo repository.ReportRepository,
	composer *Composer,
	dispatcher *Dispatcher,
	log *logger.Logger,
) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		notifRepo:  notifRepo,
		reportRepo: reportRepo,
		composer:   composer,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil || notif.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return s.notifRepo.MarkAsRead(ctx, userID, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// NotifyReportCreated sends the registration messages to the report owner in
// order and stops at the first failure.
func (s *service) NotifyReportCreated(ctx context.Context, report *domain.Report) error {
	for _, msg := range s.composer.ReportRegistered(report) {
		if err := s.dispatcher.Dispatch(ctx, report.UserID, msg); err != nil {
			return fmt.Errorf("notify report %s created: %w", report.ID, err)
		}
	}
	return nil
}

func (s *service) NotifyStatusChanged(ctx context.Context, before, after *domain.Report) error {
	if before.Status == after.Status {
		return nil
	}
	if err := s.dispatcher.Dispatch(ctx, after.UserID, s.composer.StatusChanged(after)); err != nil {
		return fmt.Errorf("notify report %s status %s: %w", after.ID, after.Status, err)
	}
	return nil
}

// NotifyMatchCreated tells the missing-report owner a match was found and the
// owner of the matched report that their item was paired. Each side is
// independent: a failed lookup skips only that side.
func (s *service) NotifyMatchCreated(ctx context.Context, match *domain.Match) error {
	if match.OriginalReportID == uuid.Nil {
		return nil
	}

	log := s.log.With("match_id", match.ID)
	var errs []error

	original, err := s.reportRepo.GetByID(ctx, match.OriginalReportID)
	switch {
	case err != nil:
		log.Warn("Failed to load original report", "report_id", match.OriginalReportID, "error", err)
	case original != nil && original.Type == domain.ReportTypeMissing:
		if err := s.dispatcher.Dispatch(ctx, match.UserID, s.composer.MatchFound(match)); err != nil {
			errs = append(errs, fmt.Errorf("notify match %s owner: %w", match.ID, err))
		}
	}

	matched, err := s.reportRepo.GetByID(ctx, match.MatchedWith)
	switch {
	case err != nil:
		log.Warn("Failed to load matched report", "report_id", match.MatchedWith, "error", err)
	case matched != nil && matched.UserID != uuid.Nil:
		if err := s.dispatcher.Dispatch(ctx, matched.UserID, s.composer.MatchedWithMissing()); err != nil {
			errs = append(errs, fmt.Errorf("notify match %s finder: %w", match.ID, err))
		}
	}

	return errors.Join(errs...)
}
