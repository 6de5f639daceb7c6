// Package version reports the build version of k9console.
// The version string is injected at build time with -ldflags and must be a
// semantic version.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information set at compile time via -ldflags
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// codenames maps release lines to breed names, tried in order.
var codenames = []struct {
	constraint string
	name       string
}{
	{"~0.1", "Beagle"},
	{"~0.2", "Collie"},
	{"~0.3", "Dingo"},
	{"^1.0", "Kelpie"},
}

// Info is the parsed build information.
type Info struct {
	Version   string          `json:"version"`
	Codename  string          `json:"codename"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetInfo parses the build version.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   sv.String(),
		Codename:  codenameFor(sv),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// GetCodenameForVersion returns the codename of the release line version
// belongs to, or "" when it has none or does not parse.
func GetCodenameForVersion(version string) string {
	sv, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	return codenameFor(sv)
}

func codenameFor(sv *semver.Version) string {
	// Constraints skip prereleases, so match on the release part only.
	base, err := sv.SetPrerelease("")
	if err != nil {
		return ""
	}
	for _, c := range codenames {
		constraint, err := semver.NewConstraint(c.constraint)
		if err != nil {
			continue
		}
		if constraint.Check(&base) {
			return c.name
		}
	}
	return ""
}

// GetFormattedVersion returns a one-line version string for the version command.
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("k9console v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("k9console v%s", info.Version)}
	if info.Codename != "" {
		parts[0] += fmt.Sprintf(" '%s'", info.Codename)
	}

	if info.GitCommit != "unknown" && info.GitCommit != "" {
		shortCommit := info.GitCommit
		if len(shortCommit) > 7 {
			shortCommit = shortCommit[:7]
		}
		parts = append(parts, fmt.Sprintf("commit %s", shortCommit))
	}
	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, fmt.Sprintf("built %s", info.BuildDate))
	}

	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns multi-line build information for --verbose output.
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("k9console v%s (error: %v)", Version, err)
	}

	lines := []string{
		GetFormattedVersion(),
		fmt.Sprintf("Git Commit: %s", info.GitCommit),
		fmt.Sprintf("Build Date: %s", info.BuildDate),
	}
	if pre := info.SemVer.Prerelease(); pre != "" {
		lines = append(lines, fmt.Sprintf("Prerelease: %s", pre))
	}
	if meta := info.SemVer.Metadata(); meta != "" {
		lines = append(lines, fmt.Sprintf("Build Metadata: %s", meta))
	}
	lines = append(lines,
		fmt.Sprintf("Go Version: %s", info.GoVersion),
		fmt.Sprintf("Platform: %s", info.Platform),
	)
	return strings.Join(lines, "\n")
}

// SetBuildInfo overrides the build information. Used by tests.
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}
