// internal/models/candidate.go
package models

import "jobmatch-workers/internal/compliance"

type CandidateProfile struct {
	ID              string                 `json:"id"`
	DisplayName     string                 `json:"displayName"`
	Email           string                 `json:"email,omitempty"`
	Phone           string                 `json:"phone,omitempty"`
	ProfileImageURL string                 `json:"profileImageUrl,omitempty"`
	ResumeFileURL   string                 `json:"resumeFileUrl,omitempty"`
	Skills          []string               `json:"skills"`
	Checklist       *compliance.Checklist  `json:"complianceChecklist,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}
