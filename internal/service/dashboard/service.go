package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lost-found/internal/domain"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = time.Minute
)

type Stats struct {
	TotalReports   int64                         `json:"total_reports"`
	MissingReports int64                         `json:"missing_reports"`
	FoundReports   int64                         `json:"found_reports"`
	ByStatus       map[domain.ReportStatus]int64 `json:"by_status"`
	TotalMatches   int64                         `json:"total_matches"`
	LastActivityAt *time.Time                    `json:"last_activity_at"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	statsRepo repository.StatsRepository
	redis     *redis.Client
	log       *logger.Logger
}

// NewService caches the stats in redis when a client is given.
func NewService(statsRepo repository.StatsRepository, redis *redis.Client, log *logger.Logger) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		statsRepo: statsRepo,
		redis:     redis,
		log:       log,
	}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	counts, err := s.statsRepo.CountReports(ctx)
	if err != nil {
		return nil, err
	}

	totalMatches, err := s.statsRepo.CountMatches(ctx)
	if err != nil {
		return nil, err
	}

	lastActivity, err := s.statsRepo.GetLastActivityAt(ctx)
	if err != nil {
		s.log.Warn("Failed to load last activity", "error", err)
	}

	stats := &Stats{
		ByStatus:       make(map[domain.ReportStatus]int64),
		TotalMatches:   totalMatches,
		LastActivityAt: lastActivity,
	}
	for _, c := range counts {
		stats.TotalReports += c.Count
		stats.ByStatus[c.Status] += c.Count
		switch c.Type {
		case domain.ReportTypeMissing:
			stats.MissingReports += c.Count
		case domain.ReportTypeFound:
			stats.FoundReports += c.Count
		}
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, statsJSON, statsCacheTTL).Err(); err != nil {
				s.log.Debug("Failed to cache dashboard stats", "error", err)
			}
		}
	}

	return stats, nil
}
