// internal/workers/data-access/query-jobs/queries/builders_test.go
package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestBuildQuery_MissingIndex(t *testing.T) {
	_, err := BuildQuery(JobQuery{QueryType: "job_search"})
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestBuildQuery_UnknownQueryType(t *testing.T) {
	_, err := BuildQuery(JobQuery{Index: "job_postings", QueryType: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestBuildQuery_JobSearch_FreeText(t *testing.T) {
	req, err := BuildQuery(JobQuery{
		Index:      "job_postings",
		QueryType:  "job_search",
		SearchText: "backend engineer",
		Filters:    map[string]interface{}{"status": "open"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"job_postings"}, req.Index)

	body := decodeBody(t, req.Body)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})

	must := boolQuery["must"].([]interface{})
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "backend engineer", multiMatch["query"])

	filter := boolQuery["filter"].([]interface{})
	term := filter[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "open", term["status"])
}

func TestBuildQuery_JobSearch_NoCriteriaIsMatchAll(t *testing.T) {
	req, err := BuildQuery(JobQuery{Index: "job_postings", QueryType: "job_search"})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	assert.Contains(t, body["query"].(map[string]interface{}), "match_all")
}

func TestBuildQuery_JobsBySkills(t *testing.T) {
	req, err := BuildQuery(JobQuery{
		Index:     "job_postings",
		QueryType: "jobs_by_skills",
		Skills:    []string{"go", "postgresql"},
	})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	should := boolQuery["should"].([]interface{})
	assert.Len(t, should, 2)
	assert.Equal(t, float64(1), boolQuery["minimum_should_match"])
}

func TestBuildQuery_JobsByEmployer(t *testing.T) {
	req, err := BuildQuery(JobQuery{
		Index:      "job_postings",
		QueryType:  "jobs_by_employer",
		EmployerID: "emp-42",
	})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})

	found := false
	for _, f := range filter {
		if term, ok := f.(map[string]interface{})["term"].(map[string]interface{}); ok {
			if term["employerId"] == "emp-42" {
				found = true
			}
		}
	}
	assert.True(t, found, "employerId term filter missing")
	assert.Contains(t, body, "sort")
}
