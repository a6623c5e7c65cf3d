// internal/matching/normalize.go

// Package matching implements the deterministic job-fit scoring engine:
// skill normalization, fuzzy skill comparison, and match-score calculation.
package matching

import (
	"strings"
	"unicode"
)

// Thresholds for the fuzzy fallback in SkillsMatch. The length-ratio gate
// rejects pairs whose lengths differ too much before the character-presence
// check runs.
const (
	fuzzyLengthRatio   = 0.7
	fuzzyPresenceRatio = 0.8
)

// skillAliases maps known spelling and naming variants (after separator
// stripping) to one canonical token. Read-only after init; safe for
// concurrent use.
var skillAliases = map[string]string{
	"js":         "javascript",
	"ecmascript": "javascript",
	"es6":        "javascript",
	"reactjs":    "react",
	"mongo":      "mongodb",
	"moongodb":   "mongodb", // common typo
	"expressjs":  "express",
	"nodejs":     "node",
	"vuejs":      "vue",
	"angularjs":  "angular",
	"py":         "python",
	"python3":    "python",
	"ts":         "typescript",
	"html5":      "html",
	"css3":       "css",
	"postgres":   "postgresql",
}

// NormalizeSkill reduces a free-text skill string to a comparable token:
// trimmed, lowercased, with whitespace, hyphens, underscores and periods
// removed, then resolved through the alias table. Total for any input,
// including the empty string.
func NormalizeSkill(skill string) string {
	n := strings.ToLower(strings.TrimSpace(skill))
	n = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' {
			return -1
		}
		return r
	}, n)

	if canonical, ok := skillAliases[n]; ok {
		return canonical
	}
	return n
}

// SkillsMatch reports whether two skill strings denote the same skill.
// Normalized equality and substring containment are checked first; a
// character-presence heuristic handles remaining near-misses (typos).
// The heuristic is deliberately permissive on short strings; there is no
// minimum length floor beyond the length-ratio gate.
func SkillsMatch(a, b string) bool {
	na := NormalizeSkill(a)
	nb := NormalizeSkill(b)

	// An empty normalized skill never matches anything, including another
	// empty one. The scorer drops empty entries before comparing, so this
	// guard only matters for direct callers.
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	// Specialization handling, e.g. "react" vs "react native".
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	shorter, longer := []rune(na), []rune(nb)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if float64(len(shorter))/float64(len(longer)) < fuzzyLengthRatio {
		return false
	}

	present := 0
	longerStr := string(longer)
	for _, r := range shorter {
		if strings.ContainsRune(longerStr, r) {
			present++
		}
	}

	return float64(present)/float64(len(shorter)) >= fuzzyPresenceRatio
}
