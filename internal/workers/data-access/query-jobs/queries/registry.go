// internal/workers/data-access/query-jobs/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// Execute runs the query and flattens the hits into their _source documents.
func Execute(ctx context.Context, esClient *elasticsearch.Client, q JobQuery) (*QueryResult, error) {
	if q.Pagination.Size < 1 {
		q.Pagination.Size = 20
	}
	if q.Pagination.Size > 100 {
		q.Pagination.Size = 100
	}
	if q.Pagination.From < 0 {
		q.Pagination.From = 0
	}

	req, err := BuildQuery(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing hits")
	}

	var total int64
	if t, ok := hits["total"].(map[string]interface{}); ok {
		if v, ok := t["value"].(float64); ok {
			total = int64(v)
		}
	}

	maxScore := 0.0
	if ms, ok := hits["max_score"].(float64); ok {
		maxScore = ms
	}

	var data []map[string]interface{}
	if hitList, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range hitList {
			hitMap, ok := hit.(map[string]interface{})
			if !ok {
				continue
			}
			if source, ok := hitMap["_source"].(map[string]interface{}); ok {
				data = append(data, source)
			}
		}
	}

	return &QueryResult{
		Data:      data,
		TotalHits: total,
		MaxScore:  maxScore,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
