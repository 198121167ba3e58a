package cli

import (
	"fmt"
	"os"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("DOTS_SERVER", "http://localhost:8080"),
		Output:    FormatText,
		Verbose:   false,
	}
}

// Validate checks the flags that cobra cannot
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, expected %s or %s", c.Output, FormatText, FormatJSON)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
