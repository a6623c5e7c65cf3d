// internal/workers/infrastructure/build-employer-response/models.go
package buildemployerresponse

type Input struct {
	RequestID  string                 `json:"requestId"`
	ViewerRole string                 `json:"viewerRole"`
	Candidate  map[string]interface{} `json:"candidate"`
	Match      map[string]interface{} `json:"match,omitempty"`
	Compliance map[string]interface{} `json:"compliance,omitempty"`
}

type Output struct {
	Response ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	RequestID string                 `json:"requestId"`
	Status    string                 `json:"status"`
	Data      map[string]interface{} `json:"data"`
	Metadata  ResponseMetadata       `json:"metadata"`
}

type ResponseMetadata struct {
	Timestamp  string `json:"timestamp"` // ISO 8601
	Version    string `json:"version"`
	ViewerRole string `json:"viewerRole"`
	Redacted   bool   `json:"redacted"`
}
