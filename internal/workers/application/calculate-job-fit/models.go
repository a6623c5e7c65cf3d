// internal/workers/application/calculate-job-fit/models.go
package calculatejobfit

// Input carries the skill lists inline when the orchestrating process already
// holds them; otherwise the handler resolves them by ID.
type Input struct {
	JobID           string   `json:"jobId,omitempty"`
	CandidateID     string   `json:"candidateId,omitempty"`
	RequiredSkills  []string `json:"requiredSkills,omitempty"`
	CandidateSkills []string `json:"candidateSkills,omitempty"`
}

type Output struct {
	MatchScore      int      `json:"matchScore"`
	TotalRequired   int      `json:"totalRequired"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchRating     string   `json:"matchRating"`
	RatingPriority  int      `json:"ratingPriority"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
}
