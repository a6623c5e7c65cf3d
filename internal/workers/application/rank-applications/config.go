// internal/workers/application/rank-applications/config.go
package rankapplications

import "time"

type Config struct {
	MaxItems int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: 100,
		Timeout:  5 * time.Second,
	}
}
