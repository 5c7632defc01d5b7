package version

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/mod/semver"
)

// ToolName is the name used in reports and version output.
const ToolName = "golang-tara"

// Version information - these can be overridden at build time using ldflags
var (
	// Version is the semantic version of golang-tara
	Version = "v0.3.0-beta"

	// GitCommit is the git commit hash (set at build time)
	GitCommit = "unknown"

	// GitBranch is the git branch (set at build time)
	GitBranch = "unknown"

	// BuildTime is when the binary was built (set at build time)
	BuildTime = "unknown"

	// BuildUser is who built the binary (set at build time)
	BuildUser = "unknown"
)

// BuildInfo contains comprehensive build and version information
type BuildInfo struct {
	Version     string    `json:"version" yaml:"version"`
	GitCommit   string    `json:"git_commit" yaml:"git_commit"`
	GitBranch   string    `json:"git_branch" yaml:"git_branch"`
	BuildTime   string    `json:"build_time" yaml:"build_time"`
	BuildUser   string    `json:"build_user" yaml:"build_user"`
	GoVersion   string    `json:"go_version" yaml:"go_version"`
	Platform    string    `json:"platform" yaml:"platform"`
	Compiler    string    `json:"compiler" yaml:"compiler"`
	CompileTime time.Time `json:"compile_time" yaml:"compile_time"`
}

// GetBuildInfo returns comprehensive build information
func GetBuildInfo() *BuildInfo {
	compileTime, _ := time.Parse(time.RFC3339, BuildTime)
	if BuildTime == "unknown" {
		// Fallback to a reasonable default for development builds
		compileTime = time.Now()
	}

	return &BuildInfo{
		Version:     Version,
		GitCommit:   GitCommit,
		GitBranch:   GitBranch,
		BuildTime:   BuildTime,
		BuildUser:   BuildUser,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Compiler:    runtime.Compiler,
		CompileTime: compileTime,
	}
}

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetVersionWithCommit returns version with git commit info
func GetVersionWithCommit() string {
	if GitCommit != "unknown" && len(GitCommit) >= 7 {
		return fmt.Sprintf("%s (%s)", Version, GitCommit[:7])
	}
	return Version
}

// GetFullVersionString returns a comprehensive version string for CLI display
func GetFullVersionString() string {
	info := GetBuildInfo()
	return fmt.Sprintf("%s %s (%s)\nBuilt: %s\nCommit: %s\nBranch: %s\nGo: %s\nPlatform: %s",
		ToolName,
		info.Version,
		channel(),
		info.BuildTime,
		info.GitCommit,
		info.GitBranch,
		info.GoVersion,
		info.Platform,
	)
}

func channel() string {
	switch {
	case IsProduction():
		return "release"
	case IsPrerelease():
		return "prerelease"
	default:
		return "development"
	}
}

// IsPrerelease returns true if this is a beta/alpha/rc build
func IsPrerelease() bool {
	return semver.Prerelease(canonical(Version)) != ""
}

// IsProduction returns true if this is a stable production release
func IsProduction() bool {
	return semver.IsValid(canonical(Version)) && !IsPrerelease()
}

// CheckCompatibility reports an error when the running tool is older than
// required. An empty requirement is always satisfied.
func CheckCompatibility(required string) error {
	if required == "" {
		return nil
	}
	want := canonical(required)
	if !semver.IsValid(want) {
		return fmt.Errorf("invalid required tool version %q", required)
	}
	have := canonical(Version)
	if !semver.IsValid(have) {
		return fmt.Errorf("tool version %q is not a semantic version", Version)
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("project requires %s %s or newer, this is %s", ToolName, required, Version)
	}
	return nil
}

// canonical accepts versions with or without the leading "v".
func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return v
}
