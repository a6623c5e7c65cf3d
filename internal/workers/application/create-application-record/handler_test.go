// internal/workers/application/create-application-record/handler_test.go
package createapplicationrecord

import (
	"context"
	"testing"
	"time"

	"jobmatch-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func validInput() *Input {
	return &Input{
		JobID:           "job-1",
		CandidateID:     "cand-1",
		MatchScore:      3,
		TotalRequired:   4,
		MatchPercentage: 75,
		MatchRating:     "silver",
		MatchedSkills:   []string{"go", "postgres", "redis"},
		MissingSkills:   []string{"Kubernetes"},
	}
}

func TestExecute_CreatesApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("cand-1", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.Equal(t, "submitted", output.ApplicationStatus)
	_, parseErr := time.Parse(time.RFC3339, output.AppliedAt)
	assert.NoError(t, parseErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("cand-1", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	h := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	_, err = h.Execute(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrDuplicateApplication)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(assert.AnError)

	h := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	_, err = h.Execute(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestExecute_AuditFailureDoesNotFailJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(assert.AnError)

	h := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
}

func TestExecute_MissingIdentifiers(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{JobID: "job-1"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
