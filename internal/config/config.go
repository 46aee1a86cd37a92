package config

import "time"

const DefaultEndpoint = "http://localhost:8080/jobs"

// Config is the client side configuration shared by both binaries.
type Config struct {
	Endpoint       string        // jobs endpoint receiving the search POST
	RequestTimeout time.Duration // zero means no timeout
	MaxRPS         float64       // client side submit throttle, zero means unlimited

	OpenRouterAPIKey string
	OpenRouterModel  string
	TriageWorkers    int
	TriageRPS        float64
}

func LoadConfigFromEnv() Config {
	return Config{
		Endpoint:         GetEnv("JOBS_ENDPOINT", DefaultEndpoint),
		RequestTimeout:   GetEnvDuration("JOBS_REQUEST_TIMEOUT", 0),
		MaxRPS:           GetEnvFloat("JOBS_MAX_RPS", 0),
		OpenRouterAPIKey: GetEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:  GetEnv("CV_AI_MODEL", "openai/gpt-4o-mini"),
		TriageWorkers:    GetEnvInt("TRIAGE_WORKERS", 3),
		TriageRPS:        GetEnvFloat("TRIAGE_RPS", 1),
	}
}
