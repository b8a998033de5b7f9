package matching

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lost-found/internal/domain"
	"lost-found/internal/event"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/pkg/similarity"
	"lost-found/internal/repository"
)

const (
	DefaultThreshold = 0.4
	DefaultWorkers   = 8
)

type Service interface {
	// FindMatches scans processing reports of the opposite type that share
	// category, color and location with report, records every new match and
	// returns how many were written.
	FindMatches(ctx context.Context, report *domain.Report) (int, error)
}

type Config struct {
	// Threshold is exclusive: a pair must score strictly above it.
	Threshold float64
	Workers   int
}

type service struct {
	reportRepo repository.ReportRepository
	matchRepo  repository.MatchRepository
	publisher  event.Publisher
	cfg        Config
	log        *logger.Logger
}

func NewService(reportRepo repository.ReportRepository, matchRepo repository.MatchRepository, publisher event.Publisher, cfg Config, log *logger.Logger) Service {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		reportRepo: reportRepo,
		matchRepo:  matchRepo,
		publisher:  publisher,
		cfg:        cfg,
		log:        log,
	}
}

func (s *service) FindMatches(ctx context.Context, report *domain.Report) (int, error) {
	opposite := report.Type.Opposite()
	if opposite == "" {
		return 0, nil
	}

	candidates, err := s.reportRepo.FindCandidates(ctx, domain.CandidateQuery{
		Type:     opposite,
		Status:   domain.StatusProcessing,
		Category: report.Category,
		Color:    report.Color,
		Location: report.Location,
	})
	if err != nil {
		return 0, fmt.Errorf("find candidates for report %s: %w", report.ID, err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	text := similarity.ReportText(report.Title, report.Description)

	var written atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)

	// Candidates are independent; one failing does not cancel or undo the others.
	for i := range candidates {
		candidate := &candidates[i]
		g.Go(func() error {
			created, err := s.consider(ctx, report, text, candidate)
			if created {
				written.Add(1)
			}
			return err
		})
	}

	err = g.Wait()
	n := int(written.Load())

	s.log.Debug("Match scan finished",
		"report_id", report.ID,
		"type", report.Type,
		"candidates", len(candidates),
		"matches", n,
	)
	return n, err
}

func (s *service) consider(ctx context.Context, report *domain.Report, text string, candidate *domain.Report) (bool, error) {
	if candidate.UserID == report.UserID {
		return false, nil
	}

	score := similarity.Compare(text, similarity.ReportText(candidate.Title, candidate.Description))
	if score <= s.cfg.Threshold {
		return false, nil
	}

	match := newMatch(report, candidate)

	exists, err := s.matchRepo.Exists(ctx, match.OriginalReportID, match.MatchedWith)
	if err != nil {
		return false, fmt.Errorf("check match %s/%s: %w", match.OriginalReportID, match.MatchedWith, err)
	}
	if exists {
		return false, nil
	}

	created, err := s.matchRepo.Create(ctx, match)
	if err != nil {
		return false, fmt.Errorf("create match %s/%s: %w", match.OriginalReportID, match.MatchedWith, err)
	}
	if !created {
		// Lost the race to a concurrent scan of the same pair.
		return false, nil
	}

	s.log.Info("Match created",
		"match_id", match.ID,
		"original_report_id", match.OriginalReportID,
		"matched_with", match.MatchedWith,
		"score", score,
	)

	if err := s.publisher.Publish(ctx, event.MatchCreated{Match: *match}); err != nil {
		return true, fmt.Errorf("publish match %s: %w", match.ID, err)
	}
	return true, nil
}

// newMatch orients the pair so the missing-side report is always the original
// and owns the match.
func newMatch(report, candidate *domain.Report) *domain.Match {
	missing, found := report, candidate
	if report.Type == domain.ReportTypeFound {
		missing, found = candidate, report
	}
	return &domain.Match{
		ID:               uuid.New(),
		Title:            missing.Title,
		UserID:           missing.UserID,
		MatchedWith:      found.ID,
		OriginalReportID: missing.ID,
	}
}
