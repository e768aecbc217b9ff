package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/fractalterm/internal/config/loader"
)

// FileName is the config file looked up in the user config directory.
const FileName = "fractalterm.toml"

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is the TOML file; empty means no file.
	Path string
	// FS reads Path; nil means the OS file system.
	FS loader.FileSystem
	// Env overrides settings from the environment; nil skips it.
	Env loader.Loader
}

// DefaultPath returns the config file in the user config directory, or ""
// when that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fractalterm", FileName)
}

// Load reads the file at path with environment overrides and validates the
// result.
func Load(path string) (*Config, error) {
	return LoadWith(LoadOptions{
		Path: path,
		Env:  loader.NewEnvLoader(loader.EnvPrefix),
	})
}

// LoadWith builds a Config from defaults, the file and the environment.
func LoadWith(opts LoadOptions) (*Config, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	merged, err := loader.NewTOMLLoaderWithFS(fsys, opts.Path).Load()
	if err != nil {
		return nil, err
	}
	if opts.Env != nil {
		env, err := opts.Env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode writes the settings in m over cfg. Unknown keys are an error.
func decode(m map[string]any, cfg *Config) error {
	if len(m) == 0 {
		return nil
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return &ValidationError{Path: "config", Message: "unknown settings", Value: strict.String()}
		}
		return &ValidationError{Path: "config", Message: err.Error(), Value: nil}
	}
	return nil
}
