// internal/workers/application/calculate-job-fit/handler_test.go
package calculatejobfit

import (
	"context"
	"testing"
	"time"

	"jobmatch-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}

func TestExecute_InlineSkills_FullMatch(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		RequiredSkills:  []string{"JavaScript", "React"},
		CandidateSkills: []string{"js", "reactjs"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.MatchScore)
	assert.Equal(t, 2, output.TotalRequired)
	assert.Equal(t, 100.0, output.MatchPercentage)
	assert.Equal(t, "gold", output.MatchRating)
	assert.Equal(t, 1, output.RatingPriority)
	assert.Empty(t, output.MissingSkills)
}

func TestExecute_InlineSkills_PartialMatch(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		RequiredSkills:  []string{"Python", "Django", "PostgreSQL", "Kubernetes"},
		CandidateSkills: []string{"python", "postgres"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.MatchScore)
	assert.Equal(t, 4, output.TotalRequired)
	assert.Equal(t, 50.0, output.MatchPercentage)
	assert.Equal(t, "bronze", output.MatchRating)
	assert.Equal(t, 3, output.RatingPriority)
}

func TestExecute_NoSkillSources(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 0, output.MatchScore)
	assert.Equal(t, 0, output.TotalRequired)
	assert.Equal(t, "basic", output.MatchRating)
	assert.Equal(t, 4, output.RatingPriority)
}

func TestExecute_FetchesSkillsFromDatabase(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	jobSkills := `["Go","Kubernetes"]`
	candidateSkills := `["golang","docker"]`

	redisMock.ExpectGet("job:skills:job-1").RedisNil()
	dbMock.ExpectQuery("SELECT required_skills FROM job_postings").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"required_skills"}).AddRow([]byte(jobSkills)))
	redisMock.ExpectSet("job:skills:job-1", []byte(jobSkills), 10*time.Minute).SetVal("OK")

	redisMock.ExpectGet("candidate:skills:cand-1").RedisNil()
	dbMock.ExpectQuery("SELECT skills FROM candidate_profiles").
		WithArgs("cand-1").
		WillReturnRows(sqlmock.NewRows([]string{"skills"}).AddRow([]byte(candidateSkills)))
	redisMock.ExpectSet("candidate:skills:cand-1", []byte(candidateSkills), 10*time.Minute).SetVal("OK")

	h := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		JobID:       "job-1",
		CandidateID: "cand-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalRequired)
	assert.Equal(t, 1, output.MatchScore)
	assert.Equal(t, "bronze", output.MatchRating)
	assert.ElementsMatch(t, []string{"Kubernetes"}, output.MissingSkills)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestExecute_CacheHitSkipsDatabase(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("job:skills:job-2").SetVal(`["React"]`)

	h := NewHandler(createTestConfig(), nil, redisClient, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		JobID:           "job-2",
		CandidateSkills: []string{"react native"},
	})

	require.NoError(t, err)
	assert.Equal(t, "gold", output.MatchRating)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestExecute_JobNotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery("SELECT required_skills FROM job_postings").
		WithArgs("missing-job").
		WillReturnRows(sqlmock.NewRows([]string{"required_skills"}))

	h := NewHandler(createTestConfig(), db, nil, logger.NewTestLogger(t))

	_, err = h.Execute(context.Background(), &Input{JobID: "missing-job"})

	assert.ErrorIs(t, err, ErrSkillSourceNotFound)
}

func TestExecute_CandidateFetchFailureDegradesToZeroScore(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery("SELECT skills FROM candidate_profiles").
		WithArgs("cand-9").
		WillReturnError(assert.AnError)

	h := NewHandler(createTestConfig(), db, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		RequiredSkills: []string{"Go"},
		CandidateID:    "cand-9",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.MatchScore)
	assert.Equal(t, 1, output.TotalRequired)
	assert.Equal(t, "basic", output.MatchRating)
}
