// Package config handles monkeyvm.toml configuration for the command
// line tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/vm"
)

// FileName is the name of the configuration file looked up by FindAndLoad.
const FileName = "monkeyvm.toml"

// Config represents a monkeyvm.toml file.
type Config struct {
	Log    Log    `toml:"log"`
	VM     VM     `toml:"vm"`
	Output Output `toml:"output"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// Log configures diagnostic logging.
type Log struct {
	Level  string `toml:"level"`  // zerolog level name
	Format string `toml:"format"` // "auto", "console" or "json"
}

// VM configures the virtual machine.
type VM struct {
	StackSize            int  `toml:"stack-size"`
	MaxFrames            int  `toml:"max-frames"`
	ContextCheckInterval int  `toml:"context-check-interval"`
	Trace                bool `toml:"trace"`
}

// Output configures user facing output.
type Output struct {
	Color bool `toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: Log{Level: "warn", Format: "auto"},
		VM: VM{
			StackSize:            vm.DefaultStackSize,
			MaxFrames:            vm.DefaultMaxFrames,
			ContextCheckInterval: vm.DefaultContextCheckInterval,
		},
		Output: Output{Color: true},
	}
}

// Load parses the configuration file at path. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindAndLoad walks up from startDir to find a monkeyvm.toml file and
// loads it. The defaults are returned if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var result *multierror.Error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.VM.StackSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("vm.stack-size: must be positive (got %d)", c.VM.StackSize))
	}
	if c.VM.MaxFrames <= 0 {
		result = multierror.Append(result, fmt.Errorf("vm.max-frames: must be positive (got %d)", c.VM.MaxFrames))
	}
	if c.VM.ContextCheckInterval < 0 {
		result = multierror.Append(result, fmt.Errorf("vm.context-check-interval: must not be negative (got %d)", c.VM.ContextCheckInterval))
	}
	return result.ErrorOrNil()
}

// LogLevel returns the parsed log level, falling back to warn.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// VMOptions translates the vm section into VM options. logger receives
// run logs and, when tracing is enabled, per instruction events.
func (c *Config) VMOptions(logger zerolog.Logger) []vm.Option {
	opts := []vm.Option{
		vm.WithStackSize(c.VM.StackSize),
		vm.WithMaxFrames(c.VM.MaxFrames),
		vm.WithContextCheckInterval(c.VM.ContextCheckInterval),
		vm.WithLogger(logger),
	}
	if c.VM.Trace {
		opts = append(opts, vm.WithObserver(vm.NewLogObserver(logger)))
	}
	return opts
}
