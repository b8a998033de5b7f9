package service

import (
	"github.com/redis/go-redis/v9"

	"lost-found/internal/config"
	"lost-found/internal/event"
	"lost-found/internal/pkg/i18n"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/push"
	"lost-found/internal/repository"
	"lost-found/internal/service/audit"
	"lost-found/internal/service/auth"
	"lost-found/internal/service/dashboard"
	"lost-found/internal/service/matching"
	"lost-found/internal/service/notification"
	"lost-found/internal/service/report"
)

type Services struct {
	Auth         auth.Service
	Report       report.Service
	Matching     matching.Service
	Notification notification.Service
	Audit        audit.Service
	Dashboard    dashboard.Service
}

func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	bus event.Publisher,
	sender push.Sender,
	catalog *i18n.Catalog,
	cfg *config.Config,
	log *logger.Logger,
) *Services {
	dispatcher := notification.NewDispatcher(repos.User, repos.Notification, sender, redis, cfg.UserCacheTTL, log.With("component", "dispatcher"))
	notificationService := notification.NewService(
		repos.Notification,
		repos.Report,
		notification.NewComposer(catalog),
		dispatcher,
		log.With("component", "notification"),
	)

	matchingService := matching.NewService(repos.Report, repos.Match, bus, matching.Config{
		Threshold: cfg.MatchThreshold,
		Workers:   cfg.MatchWorkers,
	}, log.With("component", "matching"))

	return &Services{
		Auth:         auth.NewService(cfg.JWTSecret),
		Report:       report.NewService(repos.Report, repos.Match, bus, log.With("component", "report")),
		Matching:     matchingService,
		Notification: notificationService,
		Audit:        audit.NewService(repos.AuditLog),
		Dashboard:    dashboard.NewService(repos.Stats, redis, log.With("component", "dashboard")),
	}
}
