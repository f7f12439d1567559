// Package config provides configuration management for the codetext
// application. It handles environment variables, per-project defaults and
// validation of all configuration parameters.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables with the CODETEXT_
// prefix, with command-line flags overlaid by the command layer afterwards
// and project-file defaults merged last:
//
//	flags > environment > project file > defaults
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//	CODETEXT_OUTPUT_TYPE      Output type: txt|docx
//	CODETEXT_EXCLUDE          Comma-separated exclusion patterns
//	CODETEXT_EXCLUDE_HIDDEN   Exclude hidden files and directories
//	CODETEXT_WORKERS          Content-read concurrency
//	CODETEXT_RATE_LIMIT       Rate limit for file reads (ops/sec)
//	CODETEXT_BUFFER_SIZE      Buffer size for file reading
//	CODETEXT_NO_PROGRESS      Disable progress reporting
//	CODETEXT_NO_COLOR         Disable colored output
//	CODETEXT_VERBOSE          Verbosity level (number of 'v's)
//
// # Default Values
//
//	OutputType:  "txt"
//	Workers:     1 (fully sequential)
//	BufferSize:  4096 bytes
//	RateLimit:   0 (unlimited)
//
// # Project Defaults File
//
// An optional .codetext.yaml at the traversal root supplies per-project
// defaults:
//
//	output_type: txt
//	exclude_hidden: true
//	exclude:
//	  - "*.bak"
//	  - "testdata/"
//
// Its exclude entries join the exclusion set exactly like command-line
// patterns; scalar settings apply only where neither a flag nor an
// environment variable decided the value. An unreadable or malformed
// project file is non-fatal.
package config
