// internal/workers/application/calculate-job-fit/handler.go
package calculatejobfit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-job-fit"
)

var (
	ErrSkillSourceNotFound = errors.New("SKILL_SOURCE_NOT_FOUND")
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
		errorCode := "MATCH_SCORE_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrSkillSourceNotFound) {
			errorCode = "SKILL_SOURCE_NOT_FOUND"
		} else if errors.Is(err, ErrDatabaseQueryFailed) {
			errorCode = "DATABASE_QUERY_FAILED"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	requiredSkills := input.RequiredSkills
	if requiredSkills == nil && input.JobID != "" {
		var err error
		requiredSkills, err = h.getJobSkills(ctx, input.JobID)
		if err != nil {
			return nil, err
		}
	}

	candidateSkills := input.CandidateSkills
	if candidateSkills == nil && input.CandidateID != "" {
		var err error
		candidateSkills, err = h.getCandidateSkills(ctx, input.CandidateID)
		if err != nil {
			// Missing candidate data degrades to a zero score rather than
			// failing the process.
			h.logger.Warn("failed to fetch candidate skills", map[string]interface{}{
				"candidateId": input.CandidateID,
				"error":       err,
			})
			candidateSkills = nil
		}
	}

	result := matching.CalculateMatchScore(requiredSkills, candidateSkills)
	metrics.MatchRatingsAssigned.WithLabelValues(string(result.Rating)).Inc()

	h.logger.Info("job fit calculated", map[string]interface{}{
		"jobId":           input.JobID,
		"candidateId":     input.CandidateID,
		"matchScore":      result.Score,
		"totalRequired":   result.TotalRequired,
		"matchPercentage": result.MatchPercentage,
		"matchRating":     result.Rating,
	})

	return &Output{
		MatchScore:      result.Score,
		TotalRequired:   result.TotalRequired,
		MatchPercentage: result.MatchPercentage,
		MatchRating:     string(result.Rating),
		RatingPriority:  matching.RatingPriority(result.Rating),
		MatchedSkills:   result.MatchedSkills,
		MissingSkills:   result.MissingSkills,
	}, nil
}

func (h *Handler) getJobSkills(ctx context.Context, jobID string) ([]string, error) {
	cacheKey := "job:skills:" + jobID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var skills []string
			if err := json.Unmarshal([]byte(val), &skills); err == nil {
				return skills, nil
			}
		}
	}

	var raw []byte
	err := h.db.QueryRowContext(ctx,
		`SELECT required_skills FROM job_postings WHERE id = $1`, jobID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: job posting %s not found", ErrSkillSourceNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch job skills: %v", ErrDatabaseQueryFailed, err)
	}

	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, fmt.Errorf("%w: malformed required_skills for job %s: %v", ErrSkillSourceNotFound, jobID, err)
	}

	if h.redis != nil {
		if err := h.redis.Set(ctx, cacheKey, raw, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache job skills", map[string]interface{}{
				"jobId": jobID,
				"error": err,
			})
		}
	}

	return skills, nil
}

func (h *Handler) getCandidateSkills(ctx context.Context, candidateID string) ([]string, error) {
	cacheKey := "candidate:skills:" + candidateID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var skills []string
			if err := json.Unmarshal([]byte(val), &skills); err == nil {
				return skills, nil
			}
		}
	}

	var raw []byte
	err := h.db.QueryRowContext(ctx,
		`SELECT skills FROM candidate_profiles WHERE id = $1`, candidateID).Scan(&raw)
	if err != nil {
		return nil, err
	}

	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, err
	}

	if h.redis != nil {
		if err := h.redis.Set(ctx, cacheKey, raw, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache candidate skills", map[string]interface{}{
				"candidateId": candidateID,
				"error":       err,
			})
		}
	}

	return skills, nil
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
