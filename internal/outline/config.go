package outline

import "fmt"

// UntitledDocument is the title used when the first page has no text.
const UntitledDocument = "Untitled Document"

// Config controls outline inference for one document.
type Config struct {
	MaxPages      int     // Pages scanned per document.
	HeadingLevels int     // Distinct heading levels recognized per page.
	MinFontSize   float64 // Fragments at or below this size are body text.
	LineProximity float64 // Max vertical gap joining fragments into one line.
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MaxPages:      50,
		HeadingLevels: 3,
		MinFontSize:   8,
		LineProximity: 15,
	}
}

// withDefaults fills zero or negative fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxPages <= 0 {
		c.MaxPages = def.MaxPages
	}
	if c.HeadingLevels <= 0 {
		c.HeadingLevels = def.HeadingLevels
	}
	if c.MinFontSize <= 0 {
		c.MinFontSize = def.MinFontSize
	}
	if c.LineProximity <= 0 {
		c.LineProximity = def.LineProximity
	}
	return c
}

// Validate rejects configurations that cannot produce a labeled outline.
func (c Config) Validate() error {
	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1, got %d", c.MaxPages)
	}
	if c.HeadingLevels < 1 || c.HeadingLevels > 6 {
		return fmt.Errorf("heading levels must be between 1 and 6, got %d", c.HeadingLevels)
	}
	return nil
}
