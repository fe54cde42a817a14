package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabaseName: "tourbook",
		MongoConnTimeout:  10 * time.Second,

		Port: "8080",

		JWTSecret: "test-secret",
		JWTIssuer: "tourbook",
		JWTTTL:    24 * time.Hour,

		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,

		RequestTimeout: 30 * time.Second,
		IdempotencyTTL: 24 * time.Hour,
		MaxRequestSize: 1 << 20,

		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		wantProblem string
	}{
		{
			name:   "defaults pass",
			mutate: func(cfg *Config) {},
		},
		{
			name:        "empty jwt secret is rejected",
			mutate:      func(cfg *Config) { cfg.JWTSecret = "" },
			wantProblem: "JWTSecret cannot be empty",
		},
		{
			name:        "empty mongo uri is rejected",
			mutate:      func(cfg *Config) { cfg.MongoURI = "" },
			wantProblem: "MongoURI cannot be empty",
		},
		{
			name:        "malformed mongo uri is rejected",
			mutate:      func(cfg *Config) { cfg.MongoURI = "http://localhost:27017" },
			wantProblem: "MongoURI must start with",
		},
		{
			name:        "non numeric port is rejected",
			mutate:      func(cfg *Config) { cfg.Port = "http" },
			wantProblem: "Port must be between 1 and 65535",
		},
		{
			name:        "non positive jwt ttl is rejected",
			mutate:      func(cfg *Config) { cfg.JWTTTL = 0 },
			wantProblem: "JWTTTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantProblem == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.wantProblem) {
				t.Errorf("expected error to mention %q, got: %v", tt.wantProblem, err)
			}
		})
	}
}
