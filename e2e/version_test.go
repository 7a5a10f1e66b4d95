package e2e

import (
	"fmt"
	"strings"
	"testing"
)

func TestVersionFlagOutputsInjectedVersion(t *testing.T) {
	t.Parallel()

	injectedVersion := "e2e-smoke"
	ldflags := fmt.Sprintf("-X github.com/getlawrence/reporter/cmd.Version=%s", injectedVersion)
	repoRoot, binaryPath := buildCLIBinary(t, "-ldflags", ldflags)

	stdout, stderr, err := runCLI(t, binaryPath, repoRoot, nil, "--version")
	if err != nil {
		t.Fatalf("running --version failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, injectedVersion) {
		t.Fatalf("expected version output to contain %q, got: %q", injectedVersion, stdout)
	}
}
