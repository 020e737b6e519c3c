// Package config loads hatch.yml and resolves settings with the precedence
// command line flag, then config file or environment, then default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file base name; any extension viper supports works.
	FileName = "hatch"

	// EnvPrefix prefixes environment overrides, e.g. HATCH_BASE_DIR.
	EnvPrefix = "HATCH"

	DefaultBaseDir   = "src"
	DefaultSkipTests = false
)

// Config holds values read from the config file or environment. A nil
// field was not set anywhere, which is different from its zero value.
type Config struct {
	BaseDir   *string
	SkipTests *bool

	// Source is the config file that was read, empty if none.
	Source string
}

// ConfigLoadError reports a config file (or .env file) that exists but
// could not be used. Callers treat it as a warning and continue with
// whatever Load returned.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load config: %v", e.Err)
	}
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	File string // explicit config file (--config); disables discovery
	Dir  string // directory searched for hatch.* and .env, default "."
}

// Load reads configuration. It never fails outright: the returned Config is
// always usable, and a non-nil error is a *ConfigLoadError describing what
// was ignored.
func Load(opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	var errs []error
	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		errs = append(errs, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// camelCase keys need explicit env names to get the underscore.
	_ = v.BindEnv("baseDir", EnvPrefix+"_BASE_DIR")
	_ = v.BindEnv("skipTests", EnvPrefix+"_SKIP_TESTS")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		// Discovery finding nothing is fine; an explicit --config must exist.
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			errs = append(errs, &ConfigLoadError{Path: v.ConfigFileUsed(), Err: err})
		}
	} else {
		cfg.Source = v.ConfigFileUsed()
	}

	if v.IsSet("baseDir") {
		s, err := cast.ToStringE(v.Get("baseDir"))
		if err != nil {
			errs = append(errs, &ConfigLoadError{Path: cfg.Source, Err: fmt.Errorf("baseDir: %w", err)})
		} else {
			cfg.BaseDir = &s
		}
	}
	if v.IsSet("skipTests") {
		b, err := cast.ToBoolE(v.Get("skipTests"))
		if err != nil {
			errs = append(errs, &ConfigLoadError{Path: cfg.Source, Err: fmt.Errorf("skipTests: %w", err)})
		} else {
			cfg.SkipTests = &b
		}
	}

	switch len(errs) {
	case 0:
		return cfg, nil
	case 1:
		return cfg, errs[0]
	default:
		return cfg, &ConfigLoadError{Path: cfg.Source, Err: errors.Join(errs...)}
	}
}

// loadDotEnv loads a .env file without overriding variables that are
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigLoadError{Path: path, Err: err}
	}
	return nil
}

// Resolve returns the command line value if given, else the config value,
// else def.
func Resolve[T any](cli, cfg *T, def T) T {
	if cli != nil {
		return *cli
	}
	if cfg != nil {
		return *cfg
	}
	return def
}

// File is the on-disk shape of hatch.yml.
type File struct {
	BaseDir   string `yaml:"baseDir"`
	SkipTests bool   `yaml:"skipTests"`
}

// Encode renders f as hatch.yml content.
func Encode(f File) ([]byte, error) {
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
