// internal/workers/application/calculate-job-fit/config.go
package calculatejobfit

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
