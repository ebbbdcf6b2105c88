package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
	"github.com/lehigh-university-libraries/kbart/internal/kbart"
)

//go:embed sample_config.toml
var sampleConfig string

// ProjectConfigName is looked up in the working directory when no path is given.
const ProjectConfigName = "kbart.toml"

// Conversion controls how issue records become coverage ranges.
type Conversion struct {
	TitleURLPrefix string `toml:"title_url_prefix"`
	Workers        int    `toml:"workers"`
	MaxYearGap     int    `toml:"max_year_gap"`
	CaseSensitive  bool   `toml:"case_sensitive"`
	Unaccented     bool   `toml:"unaccented"`
}

// Export controls how rows are written.
type Export struct {
	Style       string `toml:"style"`
	Format      string `toml:"format"`
	Fields      string `toml:"fields"`
	Amalgamate  bool   `toml:"amalgamate"`
	OmitEmpty   bool   `toml:"omit_empty"`
	OmitHeader  bool   `toml:"omit_header"`
	ExcludeNoID bool   `toml:"exclude_no_id"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for kbart.
type Config struct {
	Conversion Conversion `toml:"conversion"`
	Export     Export     `toml:"export"`
	Logging    Logging    `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := kbart.DefaultOptions()
	return Config{
		Conversion: Conversion{
			TitleURLPrefix: opts.TitleURLPrefix,
			Workers:        opts.Workers,
			MaxYearGap:     opts.MaxYearGap,
			CaseSensitive:  opts.Compare.CaseSensitive,
			Unaccented:     opts.Compare.Unaccented,
		},
		Export: Export{
			Style:  kbart.DefaultStyle,
			Format: string(kbart.FormatTSV),
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// SampleConfig returns a commented configuration file with the defaults.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the per-user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/kbart/config.toml")
}

// Load locates, parses, and validates a configuration file. It also returns
// the resolved path and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("failed to parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ConverterOptions returns the converter settings.
func (c *Config) ConverterOptions() kbart.Options {
	return kbart.Options{
		TitleURLPrefix: c.Conversion.TitleURLPrefix,
		Workers:        c.Conversion.Workers,
		MaxYearGap:     c.Conversion.MaxYearGap,
		Compare: compare.Options{
			CaseSensitive: c.Conversion.CaseSensitive,
			Unaccented:    c.Conversion.Unaccented,
		},
	}
}

// ExportOptions resolves the export settings. Validate has already checked them.
func (c *Config) ExportOptions() (kbart.ExportOptions, error) {
	fields, err := kbart.ResolveFields(c.Export.Fields)
	if err != nil {
		return kbart.ExportOptions{}, err
	}
	format, err := kbart.ParseFormat(c.Export.Format)
	if err != nil {
		return kbart.ExportOptions{}, err
	}
	return kbart.ExportOptions{
		Fields:      fields,
		Format:      format,
		OmitEmpty:   c.Export.OmitEmpty,
		OmitHeader:  c.Export.OmitHeader,
		ExcludeNoID: c.Export.ExcludeNoID,
	}, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s: %w", expanded, err)
			}
			return "", false, fmt.Errorf("failed to stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs(ProjectConfigName)
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{projectPath, defaultPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
