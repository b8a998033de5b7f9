package trigger_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/push"
)

// store backs every repository interface with maps guarded by one mutex.
type store struct {
	mu            sync.Mutex
	reports       map[uuid.UUID]domain.Report
	matches       []domain.Match
	notifications []domain.Notification
	users         map[uuid.UUID]domain.User
}

func newStore() *store {
	return &store{
		reports: make(map[uuid.UUID]domain.Report),
		users:   make(map[uuid.UUID]domain.User),
	}
}

func (s *store) addUser(language string, token *string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.users[id] = domain.User{ID: id, FCMToken: token, Language: language}
	return id
}

func (s *store) matchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

func (s *store) inbox(userID uuid.UUID) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type reportRepo struct{ *store }

func (r reportRepo) Create(ctx context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	r.reports[report.ID] = *report
	return nil
}

func (r reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (r reportRepo) UpdateStatus(ctx context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reports[report.ID]
	if !ok {
		return domain.ErrReportNotFound
	}
	stored.Status = report.Status
	stored.UpdatedAt = time.Now()
	report.UpdatedAt = stored.UpdatedAt
	r.reports[report.ID] = stored
	return nil
}

func (r reportRepo) FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Report
	for _, report := range r.reports {
		if report.Type == q.Type && report.Status == q.Status && report.Category == q.Category &&
			report.Color == q.Color && report.Location == q.Location {
			out = append(out, report)
		}
	}
	return out, nil
}

type matchRepo struct{ *store }

func (r matchRepo) Exists(ctx context.Context, originalReportID, matchedWith uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exists(originalReportID, matchedWith), nil
}

func (r matchRepo) exists(originalReportID, matchedWith uuid.UUID) bool {
	for _, m := range r.matches {
		if m.OriginalReportID == originalReportID && m.MatchedWith == matchedWith {
			return true
		}
	}
	return false
}

func (r matchRepo) Create(ctx context.Context, match *domain.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exists(match.OriginalReportID, match.MatchedWith) {
		return false, nil
	}
	match.CreatedAt = time.Now()
	r.matches = append(r.matches, *match)
	return true, nil
}

func (r matchRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Match
	for _, m := range r.matches {
		if m.OriginalReportID == reportID || m.MatchedWith == reportID {
			out = append(out, m)
		}
	}
	return out, nil
}

type userRepo struct{ *store }

func (r userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type notificationRepo struct{ *store }

func (r notificationRepo) Create(ctx context.Context, notif *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notif.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notif)
	return nil
}

func (r notificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, nil
}

func (r notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	list := r.inbox(userID)
	return list, int64(len(list)), nil
}

func (r notificationRepo) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return nil
}

func (r notificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (r notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(r.inbox(userID))), nil
}

// recorder captures push sends.
type recorder struct {
	mu   sync.Mutex
	sent []push.Message
}

func (r *recorder) Send(ctx context.Context, msg push.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recorder) to(token string) []push.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []push.Message
	for _, m := range r.sent {
		if m.Token == token {
			out = append(out, m)
		}
	}
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}
