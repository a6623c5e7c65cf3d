// internal/matching/score_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMatchScore_FullMatch(t *testing.T) {
	result := CalculateMatchScore(
		[]string{"JavaScript", "React", "Node.js"},
		[]string{"javascript", "ReactJS", "node"},
	)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 3, result.TotalRequired)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Equal(t, RatingGold, result.Rating)
	assert.Empty(t, result.MissingSkills)
	assert.Len(t, result.MatchedSkills, 3)
}

func TestCalculateMatchScore_SingleSkillGold(t *testing.T) {
	result := CalculateMatchScore([]string{"Python"}, []string{"python3"})

	assert.Equal(t, 1, result.TotalRequired)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Equal(t, RatingGold, result.Rating)
}

func TestCalculateMatchScore_PartialMatch(t *testing.T) {
	result := CalculateMatchScore(
		[]string{"JavaScript", "React", "MongoDB", "GraphQL"},
		[]string{"javascript", "reactjs"},
	)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 4, result.TotalRequired)
	assert.Equal(t, 50.0, result.MatchPercentage)
	assert.Equal(t, RatingBronze, result.Rating)
	assert.ElementsMatch(t, []string{"javascript", "reactjs"}, result.MatchedSkills)
	assert.ElementsMatch(t, []string{"MongoDB", "GraphQL"}, result.MissingSkills)
}

func TestCalculateMatchScore_TypoStillMatches(t *testing.T) {
	result := CalculateMatchScore([]string{"MongoDB"}, []string{"Moongodb"})

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, RatingGold, result.Rating)
	assert.Equal(t, []string{"Moongodb"}, result.MatchedSkills)
}

func TestCalculateMatchScore_EmptyInputs(t *testing.T) {
	tests := []struct {
		name            string
		jobSkills       []string
		candidateSkills []string
	}{
		{"both nil", nil, nil},
		{"no requirements", nil, []string{"python"}},
		{"no candidate skills", []string{}, []string{}},
		{"blank requirements", []string{"", "   "}, []string{"python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMatchScore(tt.jobSkills, tt.candidateSkills)

			assert.Equal(t, 0, result.Score)
			assert.Equal(t, 0, result.TotalRequired)
			assert.Equal(t, 0.0, result.MatchPercentage)
			assert.Equal(t, RatingBasic, result.Rating)
			assert.NotNil(t, result.MatchedSkills)
			assert.NotNil(t, result.MissingSkills)
			assert.Empty(t, result.MatchedSkills)
			assert.Empty(t, result.MissingSkills)
		})
	}
}

func TestCalculateMatchScore_NoCandidateSkills(t *testing.T) {
	result := CalculateMatchScore([]string{"Go", "Kubernetes"}, nil)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 2, result.TotalRequired)
	assert.Equal(t, RatingBasic, result.Rating)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.MissingSkills)
}

func TestCalculateMatchScore_DuplicateRequirementsCollapse(t *testing.T) {
	// "JavaScript" and "JS" normalize to the same skill; the requirement
	// list effectively holds one distinct skill.
	result := CalculateMatchScore(
		[]string{"JavaScript", "javascript", "JS"},
		[]string{"js"},
	)

	assert.Equal(t, 1, result.TotalRequired)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Equal(t, RatingGold, result.Rating)
}

func TestCalculateMatchScore_Invariants(t *testing.T) {
	cases := [][2][]string{
		{{"JavaScript", "React", "MongoDB"}, {"js", "vue"}},
		{{"Python", "Django", "PostgreSQL", "Redis"}, {"python", "postgres"}},
		{{"Go", "Go", "golang"}, {"rust"}},
		{{"HTML5", "CSS3", "TypeScript"}, {"html", "css", "ts"}},
	}

	for _, c := range cases {
		result := CalculateMatchScore(c[0], c[1])

		assert.Equal(t, result.Score, len(result.MatchedSkills),
			"score must equal matched count for %v", c)
		assert.Equal(t, result.TotalRequired, len(result.MatchedSkills)+len(result.MissingSkills),
			"matched and missing must partition the requirements for %v", c)
		if result.TotalRequired > 0 {
			expected := float64(result.Score) / float64(result.TotalRequired) * 100
			assert.InDelta(t, expected, result.MatchPercentage, 1e-9)
		}
	}
}

func TestCalculateMatchScore_Deterministic(t *testing.T) {
	job := []string{"JavaScript", "React", "MongoDB", "GraphQL"}
	cand := []string{"reactjs", "moongodb"}

	first := CalculateMatchScore(job, cand)
	second := CalculateMatchScore(job, cand)

	assert.Equal(t, first, second)
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   Rating
	}{
		{100, RatingGold},
		{99.999, RatingSilver},
		{80, RatingSilver},
		{75, RatingSilver},
		{74.9, RatingBronze},
		{50, RatingBronze},
		{49.9, RatingBasic},
		{0, RatingBasic},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RatingFor(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestRatingPriority(t *testing.T) {
	assert.Equal(t, 1, RatingPriority(RatingGold))
	assert.Equal(t, 2, RatingPriority(RatingSilver))
	assert.Equal(t, 3, RatingPriority(RatingBronze))
	assert.Equal(t, 4, RatingPriority(RatingBasic))
	assert.Equal(t, 4, RatingPriority(Rating("platinum")))
}
