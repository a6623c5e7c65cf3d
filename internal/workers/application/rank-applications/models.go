// internal/workers/application/rank-applications/models.go
package rankapplications

import "jobmatch-workers/internal/models"

type Input struct {
	Applications []models.Application `json:"applications"`
}

type Output struct {
	RankedApplications []RankedApplication `json:"rankedApplications"`
	TotalRanked        int                 `json:"totalRanked"`
}

type RankedApplication struct {
	models.Application
	Position       int `json:"position"` // 1-based
	RatingPriority int `json:"ratingPriority"`
}
