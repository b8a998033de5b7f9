package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lost-found/internal/domain"
	"lost-found/internal/event"
	"lost-found/internal/mocks"
	"lost-found/internal/service/matching"
)

func missingBackpack() *domain.Report {
	return &domain.Report{
		ID:          uuid.New(),
		Type:        domain.ReportTypeMissing,
		Title:       "black backpack",
		Description: "left at gate",
		Category:    "bag",
		Color:       "black",
		Location:    "gateA",
		UserID:      uuid.New(),
		Status:      domain.StatusProcessing,
	}
}

func foundBag() *domain.Report {
	return &domain.Report{
		ID:          uuid.New(),
		Type:        domain.ReportTypeFound,
		Title:       "black bag",
		Description: "found near gate",
		Category:    "bag",
		Color:       "black",
		Location:    "gateA",
		UserID:      uuid.New(),
		Status:      domain.StatusProcessing,
	}
}

func candidateQuery(r *domain.Report) domain.CandidateQuery {
	return domain.CandidateQuery{
		Type:     r.Type.Opposite(),
		Status:   domain.StatusProcessing,
		Category: r.Category,
		Color:    r.Color,
		Location: r.Location,
	}
}

type fixture struct {
	reports   *mocks.ReportRepository
	matches   *mocks.MatchRepository
	publisher *mocks.EventPublisher
	svc       matching.Service
}

func newFixture() *fixture {
	f := &fixture{
		reports:   new(mocks.ReportRepository),
		matches:   new(mocks.MatchRepository),
		publisher: new(mocks.EventPublisher),
	}
	f.svc = matching.NewService(f.reports, f.matches, f.publisher, matching.Config{
		Threshold: matching.DefaultThreshold,
		Workers:   4,
	}, nil)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.reports.AssertExpectations(t)
	f.matches.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestFindMatches_MissingTriggered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing, found := missingBackpack(), foundBag()

	f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()
	f.matches.On("Exists", ctx, missing.ID, found.ID).Return(false, nil).Once()
	f.matches.On("Create", ctx, mock.MatchedBy(func(m *domain.Match) bool {
		return m.OriginalReportID == missing.ID &&
			m.MatchedWith == found.ID &&
			m.Title == "black backpack" &&
			m.UserID == missing.UserID &&
			m.ID != uuid.Nil
	})).Return(true, nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e event.Event) bool {
		mc, ok := e.(event.MatchCreated)
		return ok && mc.Match.OriginalReportID == missing.ID && mc.Match.MatchedWith == found.ID
	})).Return(nil).Once()

	n, err := f.svc.FindMatches(ctx, missing)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	f.assertExpectations(t)
}

func TestFindMatches_FoundTriggeredUsesMissingSideAsOriginal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing, found := missingBackpack(), foundBag()

	f.reports.On("FindCandidates", ctx, candidateQuery(found)).Return([]domain.Report{*missing}, nil).Once()
	f.matches.On("Exists", ctx, missing.ID, found.ID).Return(false, nil).Once()
	f.matches.On("Create", ctx, mock.MatchedBy(func(m *domain.Match) bool {
		return m.OriginalReportID == missing.ID &&
			m.MatchedWith == found.ID &&
			m.Title == missing.Title &&
			m.UserID == missing.UserID
	})).Return(true, nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	n, err := f.svc.FindMatches(ctx, found)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	f.assertExpectations(t)
}

func TestFindMatches_Skips(t *testing.T) {
	ctx := context.Background()

	t.Run("same owner", func(t *testing.T) {
		f := newFixture()
		missing, found := missingBackpack(), foundBag()
		found.UserID = missing.UserID

		f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()

		n, err := f.svc.FindMatches(ctx, missing)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		f.matches.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("score at or below threshold", func(t *testing.T) {
		f := newFixture()
		missing, found := missingBackpack(), foundBag()
		found.Title = "red umbrella"
		found.Description = "xyz"

		f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()

		n, err := f.svc.FindMatches(ctx, missing)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		f.matches.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pair already recorded", func(t *testing.T) {
		f := newFixture()
		missing, found := missingBackpack(), foundBag()

		f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()
		f.matches.On("Exists", ctx, missing.ID, found.ID).Return(true, nil).Once()

		n, err := f.svc.FindMatches(ctx, missing)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		f.matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("conditional insert lost the race", func(t *testing.T) {
		f := newFixture()
		missing, found := missingBackpack(), foundBag()

		f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()
		f.matches.On("Exists", ctx, missing.ID, found.ID).Return(false, nil).Once()
		f.matches.On("Create", ctx, mock.Anything).Return(false, nil).Once()

		n, err := f.svc.FindMatches(ctx, missing)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("no candidates", func(t *testing.T) {
		f := newFixture()
		missing := missingBackpack()

		f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{}, nil).Once()

		n, err := f.svc.FindMatches(ctx, missing)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("unknown report type", func(t *testing.T) {
		f := newFixture()
		r := missingBackpack()
		r.Type = "donation"

		n, err := f.svc.FindMatches(ctx, r)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		f.reports.AssertNotCalled(t, "FindCandidates", mock.Anything, mock.Anything)
	})
}

func TestFindMatches_EmptyTextOnBothSides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing, found := missingBackpack(), foundBag()
	missing.Title, missing.Description = "", ""
	found.Title, found.Description = "", ""

	// Two empty texts compare as identical.
	f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()
	f.matches.On("Exists", ctx, missing.ID, found.ID).Return(false, nil).Once()
	f.matches.On("Create", ctx, mock.MatchedBy(func(m *domain.Match) bool { return m.Title == "" })).Return(true, nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	n, err := f.svc.FindMatches(ctx, missing)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFindMatches_CandidateQueryFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing := missingBackpack()

	f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return(nil, errors.New("db down")).Once()

	n, err := f.svc.FindMatches(ctx, missing)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, 0, n)
}

func TestFindMatches_SiblingFailureDoesNotStopOthers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing := missingBackpack()
	good, bad := foundBag(), foundBag()

	f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*bad, *good}, nil).Once()
	f.matches.On("Exists", ctx, missing.ID, bad.ID).Return(false, errors.New("timeout")).Once()
	f.matches.On("Exists", ctx, missing.ID, good.ID).Return(false, nil).Once()
	f.matches.On("Create", ctx, mock.MatchedBy(func(m *domain.Match) bool { return m.MatchedWith == good.ID })).Return(true, nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	n, err := f.svc.FindMatches(ctx, missing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.Equal(t, 1, n)
	f.assertExpectations(t)
}

func TestFindMatches_PublishFailureStillCountsWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing, found := missingBackpack(), foundBag()

	f.reports.On("FindCandidates", ctx, candidateQuery(missing)).Return([]domain.Report{*found}, nil).Once()
	f.matches.On("Exists", ctx, missing.ID, found.ID).Return(false, nil).Once()
	f.matches.On("Create", ctx, mock.Anything).Return(true, nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker unavailable")).Once()

	n, err := f.svc.FindMatches(ctx, missing)

	assert.Error(t, err)
	assert.Equal(t, 1, n)
}
