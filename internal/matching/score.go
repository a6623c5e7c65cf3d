// internal/matching/score.go
package matching

import "strings"

// Rating is the tier assigned to a match percentage.
type Rating string

const (
	RatingGold   Rating = "gold"
	RatingSilver Rating = "silver"
	RatingBronze Rating = "bronze"
	RatingBasic  Rating = "basic"
)

// MatchResult is the outcome of comparing a job's required skills against a
// candidate's skills. Immutable once returned; Score always equals
// len(MatchedSkills), and MatchedSkills plus MissingSkills partition the
// distinct required skills.
type MatchResult struct {
	Score           int      `json:"score"`
	TotalRequired   int      `json:"totalRequired"`
	MatchPercentage float64  `json:"matchPercentage"`
	Rating          Rating   `json:"rating"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

type skillEntry struct {
	original string // trimmed, original casing, for display
	folded   string // trimmed + lowercased, for dedup and comparison
}

// foldSkills trims and lowercases a raw skill list, drops empty entries, and
// deduplicates by exact (folded) string equality, preserving input order and
// the first original casing seen.
func foldSkills(raw []string) []skillEntry {
	seen := make(map[string]bool, len(raw))
	out := make([]skillEntry, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s)
		folded := strings.ToLower(trimmed)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, skillEntry{original: trimmed, folded: folded})
	}
	return out
}

// containsFuzzy reports whether list already holds an entry denoting the same
// skill as s. Linear scan: fuzzy equality is not transitive, so a hash-based
// structure would not be sound, and input lists are small.
func containsFuzzy(list []string, s string) bool {
	for _, existing := range list {
		if SkillsMatch(existing, s) {
			return true
		}
	}
	return false
}

// CalculateMatchScore compares a job's required skills against a candidate's
// skills and produces the persisted match fields. Pure and deterministic;
// empty or nil inputs degrade to a zero score, never an error.
func CalculateMatchScore(jobSkills, candidateSkills []string) MatchResult {
	requiredSkills := foldSkills(jobSkills)
	availableSkills := foldSkills(candidateSkills)

	matched := []string{}
	missing := []string{}
	duplicateRequirements := 0

	for _, req := range requiredSkills {
		satisfiedBy := ""
		found := false
		for _, have := range availableSkills {
			if SkillsMatch(req.folded, have.folded) {
				found = true
				// Prefer the literal candidate-supplied string; fall back to
				// the job-supplied one if the candidate original is empty.
				satisfiedBy = have.original
				if satisfiedBy == "" {
					satisfiedBy = req.original
				}
				break
			}
		}

		if found {
			// Two requirements that normalize differently can still satisfy
			// the same candidate skill; count the requirement once.
			if containsFuzzy(matched, satisfiedBy) {
				duplicateRequirements++
				continue
			}
			matched = append(matched, satisfiedBy)
		} else {
			if containsFuzzy(missing, req.original) {
				duplicateRequirements++
				continue
			}
			missing = append(missing, req.original)
		}
	}

	totalRequired := len(requiredSkills) - duplicateRequirements
	score := len(matched)

	percentage := 0.0
	if totalRequired > 0 {
		percentage = float64(score) / float64(totalRequired) * 100
	}

	return MatchResult{
		Score:           score,
		TotalRequired:   totalRequired,
		MatchPercentage: percentage,
		Rating:          RatingFor(percentage),
		MatchedSkills:   matched,
		MissingSkills:   missing,
	}
}

// RatingFor maps a match percentage to its tier. 100 is a distinct boundary:
// a fully satisfied requirement list is gold even when it holds one skill.
func RatingFor(percentage float64) Rating {
	switch {
	case percentage == 100:
		return RatingGold
	case percentage >= 75:
		return RatingSilver
	case percentage >= 50:
		return RatingBronze
	default:
		return RatingBasic
	}
}

// RatingPriority returns the sort key for a rating: lower is better.
// Unknown ratings sort last.
func RatingPriority(r Rating) int {
	switch r {
	case RatingGold:
		return 1
	case RatingSilver:
		return 2
	case RatingBronze:
		return 3
	default:
		return 4
	}
}
