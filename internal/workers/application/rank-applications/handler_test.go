// internal/workers/application/rank-applications/handler_test.go
package rankapplications

import (
	"context"
	"testing"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{MaxItems: 100, Timeout: 5 * time.Second}
}

func entry(id, rating string, score int, percentage float64, appliedAt string) models.Application {
	return models.Application{
		ID:              id,
		CandidateID:     "cand-" + id,
		MatchScore:      score,
		MatchRating:     rating,
		MatchPercentage: percentage,
		AppliedAt:       appliedAt,
	}
}

func ids(ranked []RankedApplication) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestExecute_SortsByRatingTier(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("a", "basic", 1, 20, "2026-01-01T00:00:00Z"),
			entry("b", "gold", 5, 100, "2026-01-02T00:00:00Z"),
			entry("c", "bronze", 3, 60, "2026-01-03T00:00:00Z"),
			entry("d", "silver", 4, 80, "2026-01-04T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(output.RankedApplications))
	assert.Equal(t, 1, output.RankedApplications[0].Position)
	assert.Equal(t, 4, output.RankedApplications[3].Position)
	assert.Equal(t, 4, output.TotalRanked)
}

func TestExecute_TieBrokenByScoreThenAppliedAt(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("early", "silver", 3, 75, "2026-01-01T00:00:00Z"),
			entry("late", "silver", 3, 75, "2026-03-01T00:00:00Z"),
			entry("strong", "silver", 6, 75, "2026-02-01T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	// Persisted score decides within a tier even when percentages are
	// equal; equal scores rank the most recent application first.
	assert.Equal(t, []string{"strong", "late", "early"}, ids(output.RankedApplications))
}

func TestExecute_ScoreOutranksPercentageWithinTier(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	// Six of eight required skills scores lower as a percentage than
	// three of four, but the raw score still wins the tie within a tier.
	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("three-of-four", "silver", 3, 75, "2026-01-01T00:00:00Z"),
			entry("six-of-eight", "silver", 6, 75, "2026-01-02T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"six-of-eight", "three-of-four"}, ids(output.RankedApplications))
}

func TestExecute_UnknownRatingSortsLast(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("weird", "platinum", 5, 100, "2026-01-01T00:00:00Z"),
			entry("plain", "basic", 1, 10, "2026-01-02T00:00:00Z"),
			entry("solid", "bronze", 3, 55, "2026-01-03T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "solid", output.RankedApplications[0].ID)
	// basic and unknown share the lowest tier; score decides.
	assert.Equal(t, []string{"solid", "weird", "plain"}, ids(output.RankedApplications))
}

func TestExecute_DeduplicatesByApplicationID(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("dup", "gold", 5, 100, "2026-01-01T00:00:00Z"),
			entry("dup", "basic", 1, 10, "2026-01-02T00:00:00Z"),
			entry("other", "silver", 4, 80, "2026-01-03T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"dup", "other"}, ids(output.RankedApplications))
	assert.Equal(t, "gold", output.RankedApplications[0].MatchRating)
}

func TestExecute_MaxItemsTruncates(t *testing.T) {
	h := NewHandler(&Config{MaxItems: 2, Timeout: time.Second}, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Applications: []models.Application{
			entry("a", "gold", 5, 100, "2026-01-01T00:00:00Z"),
			entry("b", "silver", 4, 80, "2026-01-02T00:00:00Z"),
			entry("c", "basic", 1, 10, "2026-01-03T00:00:00Z"),
		},
	})

	require.NoError(t, err)
	assert.Len(t, output.RankedApplications, 2)
	assert.Equal(t, 2, output.TotalRanked)
}

func TestExecute_EmptyInput(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Empty(t, output.RankedApplications)
	assert.Equal(t, 0, output.TotalRanked)
}

func TestExecute_NilInput(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNilInput)
}
