package flatui

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// Config holds engine tuning values. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Virtual resolution of the shorter viewport axis, in virtual units.
	VirtualResolution float32 `toml:"virtual_resolution"`

	// Scroll speed multiplier for pointer drags.
	ScrollSpeedDrag float32 `toml:"scroll_speed_drag"`

	// Pixels scrolled per wheel notch.
	ScrollSpeedWheel float32 `toml:"scroll_speed_wheel"`

	// Distance in pixels a pointer must travel before a drag starts.
	DragStartThreshold int `toml:"drag_start_threshold"`

	// Caret blink phase per millisecond; the caret shows while sin(t*rate) > 0.
	CaretBlinkRate float64 `toml:"caret_blink_rate"`

	// BCP 47 tag handed to edit sessions.
	Language string `toml:"language"`

	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		VirtualResolution:  1000,
		ScrollSpeedDrag:    2,
		ScrollSpeedWheel:   16,
		DragStartThreshold: 8,
		CaretBlinkRate:     0.01,
		Language:           "en",
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg.finish(md, path)
}

// ParseConfig decodes TOML text over the defaults.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.finish(md, "config")
}

func (c Config) finish(md toml.MetaData, name string) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown keys %v", name, undecoded)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Validate checks that every value is in range.
func (c Config) Validate() error {
	if c.VirtualResolution <= 0 {
		return fmt.Errorf("virtual_resolution must be positive, got %v", c.VirtualResolution)
	}
	if c.DragStartThreshold < 0 {
		return fmt.Errorf("drag_start_threshold must not be negative, got %d", c.DragStartThreshold)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("language %q: %w", c.Language, err)
	}
	return nil
}

// languageTag returns the parsed language, falling back to undetermined.
func (c Config) languageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		uiLogger.Debug("unparsable language, using und", "language", c.Language, "err", err)
		return language.Und
	}
	return tag
}
