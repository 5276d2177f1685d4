// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Headless render defaults used by the render command
	Renderer RendererConfig `mapstructure:"renderer"`

	// Cursor image settings used by the cursor commands
	Cursor CursorConfig `mapstructure:"cursor"`

	// Outputs placed into the output layout, in order
	Outputs []OutputConfig `mapstructure:"outputs"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// RendererConfig contains render pass defaults
type RendererConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Background string `mapstructure:"background"` // #rrggbb or #rrggbbaa
	Format     string `mapstructure:"format"`     // DRM fourcc used for readback, e.g. "AR24"
}

// CursorConfig contains cursor image settings
type CursorConfig struct {
	Image    string  `mapstructure:"image"` // PNG used by "cursor image" when no argument is given
	HotspotX int     `mapstructure:"hotspot_x"`
	HotspotY int     `mapstructure:"hotspot_y"`
	Scale    float64 `mapstructure:"scale"`
}

// OutputConfig describes one headless output
type OutputConfig struct {
	Name   string  `mapstructure:"name"`
	X      int     `mapstructure:"x"`
	Y      int     `mapstructure:"y"`
	Auto   bool    `mapstructure:"auto"` // Place right of the other outputs, ignoring X and Y
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Scale  float64 `mapstructure:"scale"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Renderer: RendererConfig{
			Width:      640,
			Height:     480,
			Background: "#000000ff",
			Format:     "AR24",
		},
		Cursor: CursorConfig{
			Image:    "",
			HotspotX: 0,
			HotspotY: 0,
			Scale:    1,
		},
		Outputs: []OutputConfig{
			{Name: "HEADLESS-1", X: 0, Y: 0, Width: 1920, Height: 1080, Scale: 1},
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("wlrwrap")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "wlrwrap"))
		}
		viper.AddConfigPath(".")
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("renderer.width", DefaultConfig.Renderer.Width)
	viper.SetDefault("renderer.height", DefaultConfig.Renderer.Height)
	viper.SetDefault("renderer.background", DefaultConfig.Renderer.Background)
	viper.SetDefault("renderer.format", DefaultConfig.Renderer.Format)

	viper.SetDefault("cursor.image", DefaultConfig.Cursor.Image)
	viper.SetDefault("cursor.hotspot_x", DefaultConfig.Cursor.HotspotX)
	viper.SetDefault("cursor.hotspot_y", DefaultConfig.Cursor.HotspotY)
	viper.SetDefault("cursor.scale", DefaultConfig.Cursor.Scale)

	viper.SetDefault("outputs", outputMaps(DefaultConfig.Outputs))

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPathOverride == "" || !os.IsNotExist(err) {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	return nil
}

// Validate rejects values the commands cannot work with.
func (c *Config) Validate() error {
	if c.Renderer.Width <= 0 || c.Renderer.Height <= 0 {
		return fmt.Errorf("invalid renderer size %dx%d", c.Renderer.Width, c.Renderer.Height)
	}
	if c.Cursor.Scale <= 0 {
		return fmt.Errorf("invalid cursor scale %v", c.Cursor.Scale)
	}
	seen := make(map[string]bool, len(c.Outputs))
	for i, o := range c.Outputs {
		if o.Name == "" {
			return fmt.Errorf("output %d has no name", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate output %q", o.Name)
		}
		seen[o.Name] = true
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("output %q has invalid size %dx%d", o.Name, o.Width, o.Height)
		}
		if o.Scale <= 0 {
			return fmt.Errorf("output %q has invalid scale %v", o.Name, o.Scale)
		}
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	store(Get())

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// store copies c into viper under the same keys Init reads.
func store(c *Config) {
	viper.Set("renderer.width", c.Renderer.Width)
	viper.Set("renderer.height", c.Renderer.Height)
	viper.Set("renderer.background", c.Renderer.Background)
	viper.Set("renderer.format", c.Renderer.Format)

	viper.Set("cursor.image", c.Cursor.Image)
	viper.Set("cursor.hotspot_x", c.Cursor.HotspotX)
	viper.Set("cursor.hotspot_y", c.Cursor.HotspotY)
	viper.Set("cursor.scale", c.Cursor.Scale)

	viper.Set("outputs", outputMaps(c.Outputs))

	viper.Set("logging.log_level", c.Logging.LogLevel)
}

func outputMaps(outputs []OutputConfig) []map[string]any {
	out := make([]map[string]any, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, map[string]any{
			"name":   o.Name,
			"x":      o.X,
			"y":      o.Y,
			"auto":   o.Auto,
			"width":  o.Width,
			"height": o.Height,
			"scale":  o.Scale,
		})
	}
	return out
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "wlrwrap.toml"
	}

	return filepath.Join(home, ".config", "wlrwrap", "wlrwrap.toml")
}
