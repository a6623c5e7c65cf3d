// internal/workers/application/rank-applications/handler.go
package rankapplications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-applications"
)

var (
	ErrNilInput = errors.New("INVALID_INPUT")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "RANKING_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()

	seen := make(map[string]bool, len(input.Applications))
	ranked := make([]RankedApplication, 0, len(input.Applications))
	for _, app := range input.Applications {
		if app.ID != "" && seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		ranked = append(ranked, RankedApplication{
			Application:    app,
			RatingPriority: matching.RatingPriority(matching.Rating(app.MatchRating)),
		})
	}

	// Rating tier first, then persisted match score, then most recent
	// application within ties. The stable sort keeps input order for fully
	// equal entries.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RatingPriority != ranked[j].RatingPriority {
			return ranked[i].RatingPriority < ranked[j].RatingPriority
		}
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].AppliedAt > ranked[j].AppliedAt
	})

	if h.config.MaxItems > 0 && len(ranked) > h.config.MaxItems {
		ranked = ranked[:h.config.MaxItems]
	}

	for i := range ranked {
		ranked[i].Position = i + 1
	}

	h.logger.Info("applications ranked", map[string]interface{}{
		"inputCount":  len(input.Applications),
		"rankedCount": len(ranked),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return &Output{
		RankedApplications: ranked,
		TotalRanked:        len(ranked),
	}, nil
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
