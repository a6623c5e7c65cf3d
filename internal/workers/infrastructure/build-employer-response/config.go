// internal/workers/infrastructure/build-employer-response/config.go
package buildemployerresponse

type Config struct {
	// SchemaPath optionally overrides the embedded response schema.
	SchemaPath string
	AppVersion string
}

func LoadConfig() *Config {
	return &Config{
		AppVersion: "dev",
	}
}
