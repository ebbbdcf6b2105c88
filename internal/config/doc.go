// Package config loads kbart settings from a TOML file and KBART_*
// environment variables.
//
// Values are layered: Default, then the config file, then the environment,
// then normalize and Validate. Command-line flags are applied by the caller
// on top of the returned Config.
package config
