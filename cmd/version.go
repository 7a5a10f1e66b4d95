package cmd

import "fmt"

// Build metadata, injected with -ldflags "-X github.com/getlawrence/reporter/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionTemplate is what --version prints.
func versionTemplate() string {
	return fmt.Sprintf("reporter {{.Version}} (commit %s, built %s)\n", GitCommit, BuildDate)
}
