// internal/workers/application/evaluate-compliance/config.go
package evaluatecompliance

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}
