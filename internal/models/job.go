// internal/models/job.go
package models

import "jobmatch-workers/internal/compliance"

type JobPosting struct {
	ID             string                  `json:"id"`
	EmployerID     string                  `json:"employerId"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description,omitempty"`
	RequiredSkills []string                `json:"requiredSkills"`
	Compliance     *compliance.Requirement `json:"complianceRequirements,omitempty"`
	Status         string                  `json:"status"`
	CreatedAt      string                  `json:"createdAt"`
	UpdatedAt      string                  `json:"updatedAt"`
}
