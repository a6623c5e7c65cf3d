// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/observability"

	ber "jobmatch-workers/internal/workers/infrastructure/build-employer-response"

	qj "jobmatch-workers/internal/workers/data-access/query-jobs"

	cjf "jobmatch-workers/internal/workers/application/calculate-job-fit"
	car "jobmatch-workers/internal/workers/application/create-application-record"
	ec "jobmatch-workers/internal/workers/application/evaluate-compliance"
	ra "jobmatch-workers/internal/workers/application/rank-applications"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	registry := camunda.NewRegistry(camundaClient.GetClient(), zapLog)

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Register workers ---

	if cfg.Workers[cjf.TaskType].Enabled {
		handler := cjf.NewHandler(
			&cjf.Config{
				Timeout:  time.Duration(cfg.Workers[cjf.TaskType].Timeout) * time.Millisecond,
				CacheTTL: time.Duration(cfg.Matching.SkillCacheTTL) * time.Second,
			},
			pg.DB, redisClient.Client, log,
		)
		registerWorker(registry, cjf.TaskType, cfg.Workers[cjf.TaskType], handler.Handle)
	}

	if cfg.Workers[ec.TaskType].Enabled {
		handler := ec.NewHandler(
			&ec.Config{
				Timeout:  time.Duration(cfg.Workers[ec.TaskType].Timeout) * time.Millisecond,
				CacheTTL: time.Duration(cfg.Matching.ChecklistCacheTTL) * time.Second,
			},
			pg.DB, redisClient.Client, log,
		)
		registerWorker(registry, ec.TaskType, cfg.Workers[ec.TaskType], handler.Handle)
	}

	if cfg.Workers[car.TaskType].Enabled {
		handler := car.NewHandler(
			&car.Config{
				Timeout: time.Duration(cfg.Workers[car.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		registerWorker(registry, car.TaskType, cfg.Workers[car.TaskType], handler.Handle)
	}

	if cfg.Workers[ra.TaskType].Enabled {
		handler := ra.NewHandler(
			&ra.Config{
				MaxItems: 100,
				Timeout:  time.Duration(cfg.Workers[ra.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		registerWorker(registry, ra.TaskType, cfg.Workers[ra.TaskType], handler.Handle)
	}

	if cfg.Workers[ber.TaskType].Enabled {
		handler := ber.NewHandler(
			&ber.Config{
				SchemaPath: cfg.Response.SchemaPath,
				AppVersion: cfg.App.Version,
			},
			log,
		)
		registerWorker(registry, ber.TaskType, cfg.Workers[ber.TaskType], handler.Handle)
	}

	if cfg.Workers[qj.TaskType].Enabled {
		handler := qj.NewHandler(
			&qj.Config{
				Timeout:      time.Duration(cfg.Workers[qj.TaskType].Timeout) * time.Millisecond,
				DefaultIndex: cfg.Database.Elasticsearch.JobsIndex,
			},
			esClient.Client, log,
		)
		registerWorker(registry, qj.TaskType, cfg.Workers[qj.TaskType], handler.Handle)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			status := "ready"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "not_ready"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	registry.Close()

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func registerWorker(registry *camunda.Registry, taskType string, wcfg config.WorkerConfig, handler camunda.HandlerFunc) {
	registry.Start(taskType, wcfg.MaxJobsActive, time.Duration(wcfg.Timeout)*time.Millisecond, handler)
}
