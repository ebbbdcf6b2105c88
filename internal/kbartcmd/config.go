package kbartcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/kbart/internal/config"
)

// executeConfigInit writes the sample configuration to path, or to stdout
// when path is "-".
func executeConfigInit(stdout io.Writer, path string, force bool) error {
	if path == "-" {
		_, err := io.WriteString(stdout, config.SampleConfig())
		return err
	}
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote sample config to %s\n", path)
	return nil
}
