// Package thumb2cfg is the TOML-backed configuration for the demo tooling.
// The Writer itself takes no configuration — it is a pure library object.
// cmd/thumb2asm reads the encoder section (fixup-table capacities and
// target OS). The display section is loaded and saved with the rest, but
// no front-end reads it: cmd/thumb2buf does not load this configuration
// and takes its bytes-per-line setting from a command-line flag.
package thumb2cfg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration shape for the demo CLI and TUI.
type Config struct {
	Encoder struct {
		TargetOS         string `toml:"target_os"` // linux, android, other
		LabelCapacity    int    `toml:"label_capacity"`
		LabelRefCapacity int    `toml:"label_ref_capacity"`
		LiteralCapacity  int    `toml:"literal_ref_capacity"`
	} `toml:"encoder"`

	Display struct {
		ColorOutput  bool `toml:"color_output"`
		BytesPerLine int  `toml:"bytes_per_line"`
	} `toml:"display"`
}

// DefaultConfig returns generous table capacities (100 labels, 300
// label-refs, 100 literal-refs) and a Linux target.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Encoder.TargetOS = "linux"
	cfg.Encoder.LabelCapacity = 100
	cfg.Encoder.LabelRefCapacity = 300
	cfg.Encoder.LiteralCapacity = 100

	cfg.Display.ColorOutput = true
	cfg.Display.BytesPerLine = 16

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "thumb2")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "thumb2")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling back to
// DefaultConfig if no file is present.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to DefaultConfig if
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Capacities returns the three fixup-table capacities as a triple suitable
// for Writer.SetCapacities.
func (c *Config) Capacities() (labels, labelRefs, literalRefs int) {
	return c.Encoder.LabelCapacity, c.Encoder.LabelRefCapacity, c.Encoder.LiteralCapacity
}

// TargetOS returns the configured target OS string unchanged. This package
// does not import thumb2, so mapping the string onto a thumb2.TargetOS for
// Writer.SetTargetOS is left to the cmd/ front-ends (see cmd/thumb2asm).
func (c *Config) TargetOS() string {
	return c.Encoder.TargetOS
}
