// internal/workers/data-access/query-jobs/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// JobQuery defines one search against the job postings index.
type JobQuery struct {
	Index      string
	QueryType  string
	SearchText string
	Skills     []string
	EmployerID string
	Filters    map[string]interface{}
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request for the given query type.
func BuildQuery(q JobQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch q.QueryType {
	case "job_search":
		queryBody = buildJobSearchQuery(q)
	case "jobs_by_skills":
		queryBody = buildJobsBySkillsQuery(q)
	case "jobs_by_employer":
		queryBody = buildJobsByEmployerQuery(q)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, q.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  strings.NewReader(string(body)),
		From:  &q.Pagination.From,
		Size:  &q.Pagination.Size,
	}

	return &req, nil
}

// buildJobSearchQuery is free-text search over title and description with
// optional exact-match filters (status, location, employmentType).
func buildJobSearchQuery(q JobQuery) map[string]interface{} {
	must := []interface{}{}
	if q.SearchText != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.SearchText,
				"fields": []string{"title^2", "description"},
			},
		})
	}

	filter := buildTermFilters(q.Filters)

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// buildJobsBySkillsQuery matches jobs whose required skills overlap the given
// list. More overlapping skills ranks higher.
func buildJobsBySkillsQuery(q JobQuery) map[string]interface{} {
	should := make([]interface{}, 0, len(q.Skills))
	for _, skill := range q.Skills {
		should = append(should, map[string]interface{}{
			"match": map[string]interface{}{
				"requiredSkills": skill,
			},
		})
	}

	boolQuery := map[string]interface{}{
		"should":               should,
		"minimum_should_match": 1,
	}
	if filter := buildTermFilters(q.Filters); len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func buildJobsByEmployerQuery(q JobQuery) map[string]interface{} {
	filter := buildTermFilters(q.Filters)
	filter = append(filter, map[string]interface{}{
		"term": map[string]interface{}{"employerId": q.EmployerID},
	})

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filter},
		},
		"sort": []interface{}{
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}},
		},
	}
}

func buildTermFilters(filters map[string]interface{}) []interface{} {
	out := []interface{}{}
	for field, value := range filters {
		out = append(out, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}
	return out
}
