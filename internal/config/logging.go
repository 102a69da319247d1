package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" env:"GOLDENEYE_LOG_LEVEL"`   // debug, info, warn, error
	Format     string          `yaml:"format" env:"GOLDENEYE_LOG_FORMAT"` // console, json
	File       string          `yaml:"file,omitempty"`                    // defaults to stderr
	Categories map[string]bool `yaml:"categories,omitempty"`              // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
