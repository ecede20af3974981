// Package config defines the runtime configuration for siteharvest,
// including CLI-populated settings, validation, XDG directory paths,
// and the optional per-site YAML configuration file.
package config
