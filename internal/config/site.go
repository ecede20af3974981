package config

import "time"

// SiteConfig holds site-specific configuration for a single host.
// This allows customizing harvest behavior per site.
type SiteConfig struct {
	// UserAgent overrides the global User-Agent for this site.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Delay overrides the global request delay for this site.
	// If zero, the global delay is used.
	Delay time.Duration `yaml:"delay,omitempty"`

	// MaxPages overrides the global page limit for this site.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// ExtraKeywords are additional anchor-text keywords that mark a link
	// as a resource page for this site.
	ExtraKeywords []string `yaml:"extraKeywords,omitempty"`

	// ExtraExtensions are additional file extensions treated as
	// downloadable resources for this site (with or without leading dot).
	ExtraExtensions []string `yaml:"extraExtensions,omitempty"`
}

// File represents the structure of the .siteharvest configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations.
	// Keys should be the hostname without the protocol (e.g., "www.example.org").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific hostname.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with site-specific configuration if present
	if siteConfig, ok := cf.Sites[host]; ok {
		if siteConfig.UserAgent != "" {
			result.UserAgent = siteConfig.UserAgent
		}
		if siteConfig.Delay != 0 {
			result.Delay = siteConfig.Delay
		}
		if siteConfig.MaxPages != 0 {
			result.MaxPages = siteConfig.MaxPages
		}
		if len(siteConfig.Headers) > 0 {
			// Merge into a fresh map: result.Headers aliases the
			// Defaults map after the struct copy, and writing through
			// it would leak site headers into every later lookup.
			merged := make(map[string]string, len(result.Headers)+len(siteConfig.Headers))
			for k, v := range result.Headers {
				merged[k] = v
			}
			for k, v := range siteConfig.Headers {
				merged[k] = v
			}
			result.Headers = merged
		}
		if len(siteConfig.ExtraKeywords) > 0 {
			result.ExtraKeywords = siteConfig.ExtraKeywords
		}
		if len(siteConfig.ExtraExtensions) > 0 {
			result.ExtraExtensions = siteConfig.ExtraExtensions
		}
	}

	return result
}
