package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "quill.toml"

// Config is the project build configuration, loaded from quill.toml.
type Config struct {
	Build   BuildConfig   `toml:"build"`
	Emitter EmitterConfig `toml:"emitter"`
	Log     LogConfig     `toml:"log"`
}

// BuildConfig controls the pipeline.
type BuildConfig struct {
	// RecoverStatements makes the parser skip to the next statement
	// boundary after a syntax error instead of aborting.
	RecoverStatements bool `toml:"recover_statements"`
	// EmitOnError emits target text even when semantic errors were
	// reported. Off by default: emission is normally skipped entirely
	// when errors exist.
	EmitOnError bool `toml:"emit_on_error"`
	// OutputDir receives the generated target files.
	OutputDir string `toml:"output_dir"`
}

// EmitterConfig controls target text layout.
type EmitterConfig struct {
	Indent string `toml:"indent"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the configuration used when no quill.toml exists.
func Default() Config {
	return Config{
		Build: BuildConfig{
			RecoverStatements: false,
			EmitOnError:       false,
			OutputDir:         "build",
		},
		Emitter: EmitterConfig{
			Indent: "    ",
		},
		Log: LogConfig{
			Debug: false,
		},
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if cfg.Emitter.Indent == "" {
		cfg.Emitter.Indent = Default().Emitter.Indent
	}
	if cfg.Build.OutputDir == "" {
		cfg.Build.OutputDir = Default().Build.OutputDir
	}
	return cfg, nil
}
