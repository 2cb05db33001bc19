package audiotag

import (
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	// Without ldflags the commit and build time stay "unknown", but the Go
	// version always resolves from the runtime.
	if info.GoVersion == "" || info.GoVersion == "unknown" {
		t.Errorf("GoVersion = %q, want the runtime version", info.GoVersion)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want a go version string", info.GoVersion)
	}
	if info.GitCommit == "" || info.BuildTime == "" {
		t.Error("GitCommit and BuildTime must never be empty")
	}
}
