// internal/workers/infrastructure/build-employer-response/handler.go
package buildemployerresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "build-employer-response"

var (
	ErrUnknownViewerRole       = errors.New("UNKNOWN_VIEWER_ROLE")
	ErrResponseSchemaViolation = errors.New("RESPONSE_SCHEMA_VIOLATION")
)

// Candidate fields an employer must never see. Stripped, not blanked, so the
// serialized payload carries no hint of the hidden fields.
var employerRedactedFields = []string{
	"email",
	"phone",
	"profileImageUrl",
	"resumeFileUrl",
	"complianceChecklist",
}

// fullAccessRoles see the candidate record as stored. Everything else,
// employers included, gets the redacted view.
var fullAccessRoles = map[string]bool{
	"admin":      true,
	"recruiter":  true,
	"consultant": true,
	"student":    true,
}

var knownRoles = map[string]bool{
	"admin":      true,
	"recruiter":  true,
	"consultant": true,
	"student":    true,
	"employer":   true,
}

const defaultResponseSchema = `{
	"type": "object",
	"required": ["requestId", "status", "data", "metadata"],
	"properties": {
		"requestId": {"type": "string"},
		"status": {"type": "string", "enum": ["success", "error"]},
		"data": {
			"type": "object",
			"required": ["candidate"],
			"properties": {
				"candidate": {"type": "object"},
				"match": {"type": "object"},
				"compliance": {
					"type": "object",
					"properties": {
						"enabled": {"type": "boolean"},
						"pass": {"type": "boolean"},
						"failedChecks": {"type": "array", "items": {"type": "string"}},
						"summary": {"type": "string"}
					}
				}
			}
		},
		"metadata": {
			"type": "object",
			"required": ["timestamp", "version", "viewerRole", "redacted"]
		}
	}
}`

type Handler struct {
	config *Config
	logger logger.Logger

	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		errorCode := "RESPONSE_BUILD_FAILED"
		if errors.Is(err, ErrUnknownViewerRole) {
			errorCode = "UNKNOWN_VIEWER_ROLE"
		} else if errors.Is(err, ErrResponseSchemaViolation) {
			errorCode = "RESPONSE_SCHEMA_VIOLATION"
		}
		h.failJob(client, job, errorCode, err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	role := strings.ToLower(strings.TrimSpace(input.ViewerRole))
	if role == "" {
		return nil, fmt.Errorf("%w: viewerRole is required", ErrUnknownViewerRole)
	}
	if !knownRoles[role] {
		// Unrecognized roles get the most restricted view instead of a
		// hard failure.
		h.logger.Warn("unrecognized viewer role, applying employer redaction", map[string]interface{}{
			"viewerRole": input.ViewerRole,
		})
	}

	redact := !fullAccessRoles[role]

	candidate := input.Candidate
	if candidate == nil {
		candidate = map[string]interface{}{}
	}
	if redact {
		candidate = redactCandidate(candidate)
	}

	data := map[string]interface{}{
		"candidate": candidate,
	}
	if input.Match != nil {
		data["match"] = input.Match
	}
	if input.Compliance != nil {
		data["compliance"] = input.Compliance
	}

	payload := ResponsePayload{
		RequestID: input.RequestID,
		Status:    "success",
		Data:      data,
		Metadata: ResponseMetadata{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Version:    h.config.AppVersion,
			ViewerRole: role,
			Redacted:   redact,
		},
	}

	if err := h.validateResponse(&payload); err != nil {
		return nil, err
	}

	h.logger.Info("response built", map[string]interface{}{
		"requestId":  input.RequestID,
		"viewerRole": role,
		"redacted":   redact,
	})

	return &Output{Response: payload}, nil
}

// redactCandidate returns a shallow copy with the employer-hidden fields
// removed. The input map is never mutated; it may be shared with other
// process variables.
func redactCandidate(candidate map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(candidate))
	for k, v := range candidate {
		out[k] = v
	}
	for _, field := range employerRedactedFields {
		delete(out, field)
	}
	return out
}

func (h *Handler) loadSchema() (*gojsonschema.Schema, error) {
	h.schemaOnce.Do(func() {
		raw := defaultResponseSchema
		if h.config.SchemaPath != "" {
			data, err := os.ReadFile(h.config.SchemaPath)
			if err != nil {
				h.schemaErr = fmt.Errorf("read response schema: %w", err)
				return
			}
			raw = string(data)
		}
		h.schema, h.schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	})
	return h.schema, h.schemaErr
}

func (h *Handler) validateResponse(payload *ResponsePayload) error {
	schema, err := h.loadSchema()
	if err != nil {
		return err
	}

	doc, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal response: %v", ErrResponseSchemaViolation, err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResponseSchemaViolation, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("%w: %s", ErrResponseSchemaViolation, strings.Join(details, "; "))
	}
	return nil
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
