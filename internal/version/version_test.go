package version

import (
	"strings"
	"testing"
)

func TestVersionHasDefaultValue(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestOptionalFieldsDefaultEmpty(t *testing.T) {
	if GitCommit != "" {
		t.Errorf("GitCommit = %q, want empty by default", GitCommit)
	}
	if GitMessage != "" {
		t.Errorf("GitMessage = %q, want empty by default", GitMessage)
	}
	if BuildDate != "" {
		t.Errorf("BuildDate = %q, want empty by default", BuildDate)
	}
}

func TestLdflagsOverrideSurvivesRoundTrip(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-08-06T10:30:00Z"

	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2026-08-06T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2026-08-06T10:30:00Z")
	}
}

func TestTaglineIsNonEmpty(t *testing.T) {
	if strings.TrimSpace(Tagline) == "" {
		t.Error("Tagline should not be empty")
	}
}
