// internal/models/application.go
package models

// Application is the persisted record of a candidate applying to a job.
// The match fields are written once at creation from the job-fit score and
// never recomputed; compliance is evaluated on read and never stored here.
type Application struct {
	ID          string `json:"id"`
	JobID       string `json:"jobId"`
	CandidateID string `json:"candidateId"`
	Status      string `json:"status"`

	MatchScore      int      `json:"matchScore"`
	TotalRequired   int      `json:"totalRequired"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchRating     string   `json:"matchRating"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`

	AppliedAt string `json:"appliedAt"`
	UpdatedAt string `json:"updatedAt"`
}
