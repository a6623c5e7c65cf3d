// internal/workers/data-access/query-jobs/config.go
package queryjobs

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultIndex: "job_postings",
	}
}
