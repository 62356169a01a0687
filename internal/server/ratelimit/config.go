package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // ServeMux-style pattern, e.g. "/squad/slots/{role}"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: EndpointConfigs(
			Tier{
				Limit:  getEnvInt("RATE_LIMIT_MODEL_LIMIT", 20),
				Window: getEnvDuration("RATE_LIMIT_MODEL_WINDOW", time.Hour),
				Burst:  getEnvInt("RATE_LIMIT_MODEL_BURST", 3),
			},
			Tier{
				Limit:  getEnvInt("RATE_LIMIT_WRITE_LIMIT", 120),
				Window: getEnvDuration("RATE_LIMIT_WRITE_WINDOW", time.Minute),
				Burst:  getEnvInt("RATE_LIMIT_WRITE_BURST", 20),
			},
		),
	}
}

// Tier is a limit shared by a group of endpoints.
type Tier struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// DefaultEndpointConfigs returns the built-in endpoint limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(
		Tier{Limit: 20, Window: time.Hour, Burst: 3},
		Tier{Limit: 120, Window: time.Minute, Burst: 20},
	)
}

// EndpointConfigs applies model to every model-backed endpoint and write to every other
// mutating endpoint. Reads fall through to the default limit.
func EndpointConfigs(model, write Tier) []EndpointConfig {
	modelBacked := []struct{ method, path string }{
		{http.MethodPost, "/squad/analyze"},
		{http.MethodPost, "/squad/arrange"},
		{http.MethodPost, "/roster/scout"},
		{http.MethodPost, "/roster/scout/stream"},
		{http.MethodPut, "/roster/{id}/resume"},
	}
	writes := []struct{ method, path string }{
		{http.MethodPut, "/squad/formation"},
		{http.MethodPut, "/squad/slots/{role}"},
		{http.MethodDelete, "/squad/slots/{role}"},
		{http.MethodPost, "/squad/lead"},
		{http.MethodPut, "/roster/{id}/image"},
	}

	configs := make([]EndpointConfig, 0, len(modelBacked)+len(writes))
	for _, e := range modelBacked {
		configs = append(configs, EndpointConfig{Path: e.path, Method: e.method, Limit: model.Limit, Window: model.Window, Burst: model.Burst})
	}
	for _, e := range writes {
		configs = append(configs, EndpointConfig{Path: e.path, Method: e.method, Limit: write.Limit, Window: write.Window, Burst: write.Burst})
	}
	return configs
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
