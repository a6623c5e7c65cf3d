// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// HandlerFunc is the Zeebe job handler signature workers expose.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Registry opens job workers and tracks them so shutdown can close them
// before the client connection goes away.
type Registry struct {
	client  zbc.Client
	logger  *zap.Logger
	workers []worker.JobWorker
}

func NewRegistry(client zbc.Client, logger *zap.Logger) *Registry {
	return &Registry{
		client: client,
		logger: logger,
	}
}

// Start opens a job worker for the task type and registers it for shutdown.
func (r *Registry) Start(taskType string, maxJobsActive int, timeout time.Duration, handler HandlerFunc) {
	w := r.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	r.workers = append(r.workers, w)

	r.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Duration("timeout", timeout),
	)
}

// Close stops polling on every registered worker and waits for in-flight
// jobs to finish.
func (r *Registry) Close() {
	for _, w := range r.workers {
		w.Close()
		w.AwaitClose()
	}
	r.logger.Info("all workers stopped", zap.Int("count", len(r.workers)))
}
