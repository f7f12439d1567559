package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Input is the local directory path or remote repository URL
	Input string

	// Output is the destination artifact path
	Output string

	// OutputType selects the artifact serialization (txt or docx)
	OutputType string

	// Exclude is the list of additional exclusion patterns; each entry
	// may contain comma-separated sub-patterns
	Exclude []string

	// ExcludeHidden excludes paths with a "." or "__" prefixed component
	ExcludeHidden bool

	// Workers is the content-read concurrency (1 = fully sequential)
	Workers int

	// RateLimit is the maximum number of file reads per second (0 for unlimited)
	RateLimit int

	// BufferSize is the size of the buffer for file reading
	BufferSize int

	// NoProgress disables progress reporting
	NoProgress bool

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int

	// explicit tracks keys set by flag or environment, so project-file
	// defaults never override them
	explicit map[string]bool
}

// validOutputTypes contains the list of supported output types
var validOutputTypes = map[string]bool{
	OutputTypeTxt:  true,
	OutputTypeDocx: true,
}

// envKeys are the viper keys with a CODETEXT_ environment binding
var envKeys = []string{
	"output_type",
	"exclude",
	"exclude_hidden",
	"workers",
	"rate_limit",
	"buffer_size",
	"no_progress",
	"no_color",
	"verbose",
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("output_type", OutputTypeTxt)
	v.SetDefault("exclude_hidden", false)
	v.SetDefault("workers", 1)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("buffer_size", DefaultBufferSize)
	v.SetDefault("no_progress", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	// Configure environment variables
	v.SetEnvPrefix("CODETEXT")
	v.AutomaticEnv()
	for _, key := range envKeys {
		v.BindEnv(key)
	}

	// Process verbosity level from a string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" && strings.Count(verboseStr, "v") == len(verboseStr) {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	cfg := Config{
		OutputType:    v.GetString("output_type"),
		ExcludeHidden: v.GetBool("exclude_hidden"),
		Workers:       v.GetInt("workers"),
		RateLimit:     v.GetInt("rate_limit"),
		BufferSize:    v.GetInt("buffer_size"),
		NoProgress:    v.GetBool("no_progress"),
		NoColor:       v.GetBool("no_color"),
		Verbose:       v.GetInt("verbose"),
		explicit:      make(map[string]bool),
	}

	// Handle special case for workers=0
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	// Process exclusion patterns
	if excludeStr := v.GetString("exclude"); excludeStr != "" {
		patterns := strings.Split(excludeStr, ",")
		cfg.Exclude = make([]string, 0, len(patterns))
		for _, p := range patterns {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Exclude = append(cfg.Exclude, trimmed)
			}
		}
	}

	// Environment-set keys beat project-file defaults
	for _, key := range envKeys {
		if _, ok := os.LookupEnv("CODETEXT_" + strings.ToUpper(key)); ok {
			cfg.explicit[key] = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MarkExplicit records that a key was set explicitly (flag or environment)
func (c *Config) MarkExplicit(key string) {
	if c.explicit == nil {
		c.explicit = make(map[string]bool)
	}
	c.explicit[key] = true
}

// IsExplicit reports whether a key was set explicitly
func (c Config) IsExplicit(key string) bool {
	return c.explicit[key]
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	// Validate output type
	if !validOutputTypes[c.OutputType] {
		return fmt.Errorf("invalid output type: must be one of [txt docx]")
	}

	// Validate workers count
	if c.Workers < 1 {
		return fmt.Errorf("workers count must be positive")
	}
	maxWorkers := runtime.NumCPU() * MaxWorkerMultiplier
	if c.Workers > maxWorkers {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	// Validate buffer size
	if c.BufferSize < MinBufferSize {
		return fmt.Errorf("buffer size must be at least %d bytes", MinBufferSize)
	}

	// Validate rate limit
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, OutputType: %s, Exclude: %v, "+
			"ExcludeHidden: %v, Workers: %d, RateLimit: %d, BufferSize: %d, "+
			"NoProgress: %v, NoColor: %v, Verbose: %d}",
		c.Input, c.Output, c.OutputType, c.Exclude,
		c.ExcludeHidden, c.Workers, c.RateLimit, c.BufferSize,
		c.NoProgress, c.NoColor, c.Verbose,
	)
}
