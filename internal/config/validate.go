package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("environment must be development or production (got %q)", c.Environment)
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive (got %v)", c.Auth.TokenTTL)
	}

	if c.IsProduction() && c.Auth.GoogleClientID == "" && c.Auth.AppleClientID == "" {
		return fmt.Errorf("production requires at least one identity provider audience (google_client_id or apple_client_id)")
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive (got %d)", c.LLM.MaxTokens)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be positive when enabled (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}
