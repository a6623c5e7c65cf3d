// internal/workers/application/create-application-record/handler.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-application-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateApplication = errors.New("DUPLICATE_APPLICATION")
	ErrInvalidInput         = errors.New("INVALID_INPUT")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateApplication) {
			errorCode = "DUPLICATE_APPLICATION"
		} else if errors.Is(err, ErrInvalidInput) {
			errorCode = "INVALID_INPUT"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.JobID == "" || input.CandidateID == "" {
		return nil, fmt.Errorf("%w: jobId and candidateId are required", ErrInvalidInput)
	}

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE candidate_id = $1 AND job_id = $2
		)`, input.CandidateID, input.JobID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: application already exists for candidate %s and job %s",
			ErrDuplicateApplication, input.CandidateID, input.JobID)
	}

	appID := uuid.New().String()
	appliedAt := time.Now().UTC().Format(time.RFC3339)

	matchedJSON, err := json.Marshal(emptyIfNil(input.MatchedSkills))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal matched skills: %v", ErrDatabaseInsertFailed, err)
	}
	missingJSON, err := json.Marshal(emptyIfNil(input.MissingSkills))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal missing skills: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, job_id, candidate_id, status,
			match_score, total_required, match_percentage, match_rating,
			matched_skills, missing_skills, applied_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		appID,
		input.JobID,
		input.CandidateID,
		"submitted",
		input.MatchScore,
		input.TotalRequired,
		input.MatchPercentage,
		input.MatchRating,
		matchedJSON,
		missingJSON,
		appliedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit entry is non-critical; log and continue on failure.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"jobId":           input.JobID,
		"candidateId":     input.CandidateID,
		"matchScore":      input.MatchScore,
		"matchRating":     input.MatchRating,
		"matchPercentage": input.MatchPercentage,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_created",
		"application",
		appID,
		auditDetailsJSON,
		appliedAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": appID,
		})
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": appID,
		"jobId":         input.JobID,
		"candidateId":   input.CandidateID,
		"matchRating":   input.MatchRating,
	})

	return &Output{
		ApplicationID:     appID,
		ApplicationStatus: "submitted",
		AppliedAt:         appliedAt,
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
