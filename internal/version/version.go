// Package version exposes the build identity of the binary. The variables
// are injected at build time via ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	// These variables are set during build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo describes the build of the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build information for the running binary.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// FullVersion returns the multi-line version banner.
func FullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("codetext %s\n", info.Version))
	b.WriteString("========================================\n")
	b.WriteString(fmt.Sprintf("  Commit:     %s\n", info.GitCommit))
	b.WriteString(fmt.Sprintf("  Build Date: %s\n", info.BuildDate))
	b.WriteString(fmt.Sprintf("  Go Version: %s\n", info.GoVersion))
	b.WriteString(fmt.Sprintf("  Platform:   %s\n", info.Platform))

	return b.String()
}
