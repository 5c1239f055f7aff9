package version

import "fmt"

// Build-time variables set via ldflags, e.g.
//
//	-X github.com/survey-system/surveyconsole/internal/version.version=v1.2.0
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}

// String formats the version for cobra's --version flag and the outgoing User-Agent.
func (i Info) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", i.Version, i.BuildDate, i.GitCommit)
}

// UserAgent identifies a binary in requests sent to the survey API.
func UserAgent(binary string) string {
	return fmt.Sprintf("%s/%s", binary, version)
}
