// internal/workers/data-access/query-jobs/models.go
package queryjobs

type Input struct {
	IndexName  string                 `json:"indexName,omitempty"`
	QueryType  string                 `json:"queryType"`
	SearchText string                 `json:"searchText,omitempty"`
	Skills     []string               `json:"skills,omitempty"`
	EmployerID string                 `json:"employerId,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
}
