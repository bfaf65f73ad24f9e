package dispatch

import "fmt"

// Config defines batch processing parameters.
type Config struct {
	// Limit caps the number of pending requests pulled per batch.
	Limit int `json:"limit"`
	// TopN is the number of runner-up candidates retained as alternatives.
	TopN int `json:"top_n"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Limit == 0 {
		c.Limit = 5
	}
	if c.TopN == 0 {
		c.TopN = 3
	}
}

// Validate checks the configured values.
func (c Config) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d", c.TopN)
	}
	return nil
}
