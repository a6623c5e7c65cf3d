// internal/workers/application/evaluate-compliance/models.go
package evaluatecompliance

import "jobmatch-workers/internal/compliance"

// Input carries the records inline when the process already resolved them;
// otherwise the handler loads them by ID. Inline records win over IDs.
type Input struct {
	JobID       string                  `json:"jobId,omitempty"`
	CandidateID string                  `json:"candidateId,omitempty"`
	Requirement *compliance.Requirement `json:"complianceRequirement,omitempty"`
	Checklist   *compliance.Checklist   `json:"complianceChecklist,omitempty"`
}

type Output struct {
	Compliance compliance.Evaluation `json:"compliance"`
}
