package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by applyEnv. A .env file in the working
// directory is loaded into the environment before configuration is read.
const (
	EnvTitleURLPrefix = "KBART_TITLE_URL_PREFIX"
	EnvWorkers        = "KBART_WORKERS"
	EnvMaxYearGap     = "KBART_MAX_YEAR_GAP"
	EnvStyle          = "KBART_STYLE"
	EnvFormat         = "KBART_FORMAT"
	EnvFields         = "KBART_FIELDS"
	EnvLogLevel       = "KBART_LOG_LEVEL"
)

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvTitleURLPrefix); ok {
		c.Conversion.TitleURLPrefix = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, EnvWorkers, err)
		}
		c.Conversion.Workers = n
	}
	if v, ok := lookup(EnvMaxYearGap); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, EnvMaxYearGap, err)
		}
		c.Conversion.MaxYearGap = n
	}
	if v, ok := lookup(EnvStyle); ok {
		c.Export.Style = v
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Export.Format = v
	}
	if v, ok := lookup(EnvFields); ok {
		c.Export.Fields = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
