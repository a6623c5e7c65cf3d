// internal/workers/application/create-application-record/models.go
package createapplicationrecord

// Input is the job-fit output plus the identifying pair. The match fields are
// persisted verbatim; they are never recomputed after this point.
type Input struct {
	JobID           string   `json:"jobId"`
	CandidateID     string   `json:"candidateId"`
	MatchScore      int      `json:"matchScore"`
	TotalRequired   int      `json:"totalRequired"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchRating     string   `json:"matchRating"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	AppliedAt         string `json:"appliedAt"` // ISO 8601
}
