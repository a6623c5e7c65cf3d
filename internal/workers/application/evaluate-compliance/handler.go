// internal/workers/application/evaluate-compliance/handler.go
package evaluatecompliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/compliance"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "evaluate-compliance"
)

var (
	ErrDatabaseQueryFailed = errors.New("DATABASE_QUERY_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		errorCode := "COMPLIANCE_EVAL_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseQueryFailed) {
			errorCode = "DATABASE_QUERY_FAILED"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	requirement := input.Requirement
	if requirement == nil && input.JobID != "" {
		var err error
		requirement, err = h.getJobRequirement(ctx, input.JobID)
		if err != nil {
			return nil, err
		}
	}

	checklist := input.Checklist
	if checklist == nil && input.CandidateID != "" {
		var err error
		checklist, err = h.getCandidateChecklist(ctx, input.CandidateID)
		if err != nil {
			// A candidate without a stored checklist fails the required
			// checks rather than failing the process.
			h.logger.Warn("failed to fetch compliance checklist", map[string]interface{}{
				"candidateId": input.CandidateID,
				"error":       err,
			})
			checklist = nil
		}
	}

	eval := compliance.EvaluateForJob(checklist, requirement)

	outcome := "pass"
	if !eval.Enabled {
		outcome = "disabled"
	} else if !eval.Pass {
		outcome = "fail"
	}
	metrics.ComplianceEvaluations.WithLabelValues(outcome).Inc()

	h.logger.Info("compliance evaluated", map[string]interface{}{
		"jobId":        input.JobID,
		"candidateId":  input.CandidateID,
		"enabled":      eval.Enabled,
		"pass":         eval.Pass,
		"failedChecks": len(eval.FailedChecks),
	})

	return &Output{Compliance: eval}, nil
}

// getJobRequirement loads the job's compliance requirement record. A job
// without one evaluates as "not configured", so sql.ErrNoRows and NULL both
// map to nil.
func (h *Handler) getJobRequirement(ctx context.Context, jobID string) (*compliance.Requirement, error) {
	cacheKey := "job:compliance:" + jobID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var req compliance.Requirement
			if err := json.Unmarshal([]byte(val), &req); err == nil {
				return &req, nil
			}
		}
	}

	var raw []byte
	err := h.db.QueryRowContext(ctx,
		`SELECT compliance_requirements FROM job_postings WHERE id = $1`, jobID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch compliance requirements: %v", ErrDatabaseQueryFailed, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var req compliance.Requirement
	if err := json.Unmarshal(raw, &req); err != nil {
		h.logger.Warn("malformed compliance requirements", map[string]interface{}{
			"jobId": jobID,
			"error": err,
		})
		return nil, nil
	}

	if h.redis != nil {
		if err := h.redis.Set(ctx, cacheKey, raw, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache compliance requirements", map[string]interface{}{
				"jobId": jobID,
				"error": err,
			})
		}
	}

	return &req, nil
}

func (h *Handler) getCandidateChecklist(ctx context.Context, candidateID string) (*compliance.Checklist, error) {
	cacheKey := "candidate:compliance:" + candidateID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cl compliance.Checklist
			if err := json.Unmarshal([]byte(val), &cl); err == nil {
				return &cl, nil
			}
		}
	}

	var raw []byte
	err := h.db.QueryRowContext(ctx,
		`SELECT compliance_checklist FROM candidate_profiles WHERE id = $1`, candidateID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var cl compliance.Checklist
	if err := json.Unmarshal(raw, &cl); err != nil {
		return nil, err
	}

	if h.redis != nil {
		if err := h.redis.Set(ctx, cacheKey, raw, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache compliance checklist", map[string]interface{}{
				"candidateId": candidateID,
				"error":       err,
			})
		}
	}

	return &cl, nil
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
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
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
