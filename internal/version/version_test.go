package version

import (
	"strings"
	"testing"
)

func saveBuildInfo(t *testing.T) {
	t.Helper()
	v, c, d := Version, GitCommit, BuildDate
	t.Cleanup(func() { SetBuildInfo(v, c, d) })
}

func TestGetBaseVersion(t *testing.T) {
	saveBuildInfo(t)

	tests := []struct {
		version  string
		expected string
	}{
		{"0.1.0", "0.1.0"},
		{"1.2.3-beta.1", "1.2.3"},
		{"1.2.3+45.abcdef0", "1.2.3"},
		{"not-a-version", "not-a-version"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			Version = tt.version
			if got := GetBaseVersion(); got != tt.expected {
				t.Errorf("GetBaseVersion() with Version=%q = %q, want %q", tt.version, got, tt.expected)
			}
		})
	}
}

func TestGetFormattedVersion(t *testing.T) {
	saveBuildInfo(t)

	SetBuildInfo("0.3.0", "0123456789abcdef", "2026-01-02")
	got := GetFormattedVersion()
	want := "PromptSim v0.3.0, commit 0123456, built 2026-01-02"
	if got != want {
		t.Errorf("GetFormattedVersion() = %q, want %q", got, want)
	}

	SetBuildInfo("0.3.0", "unknown", "unknown")
	if got := GetFormattedVersion(); got != "PromptSim v0.3.0" {
		t.Errorf("GetFormattedVersion() = %q, want %q", got, "PromptSim v0.3.0")
	}

	SetBuildInfo("bogus", "unknown", "unknown")
	if got := GetFormattedVersion(); !strings.Contains(got, "invalid version") {
		t.Errorf("GetFormattedVersion() = %q, want invalid marker", got)
	}
}

func TestGetDetailedVersion(t *testing.T) {
	saveBuildInfo(t)

	SetBuildInfo("1.0.0+7.abc", "abc", "2026-01-02")
	got := GetDetailedVersion()
	for _, want := range []string{"PromptSim v1.0.0+7.abc", "Git Commit: abc", "Build Metadata: 7.abc", "Go Version:", "Platform:"} {
		if !strings.Contains(got, want) {
			t.Errorf("GetDetailedVersion() missing %q in %q", want, got)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	saveBuildInfo(t)

	tests := []struct {
		name        string
		version     string
		expectError bool
	}{
		{"valid version", "1.2.3", false},
		{"valid version with prerelease", "1.2.3-alpha.1", false},
		{"invalid version", "invalid", true},
		{"empty version", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			err := ValidateVersion()
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateVersion() with Version=%q error = %v, expectError %v", tt.version, err, tt.expectError)
			}
		})
	}
}

func TestIsPrereleaseAndDevelopment(t *testing.T) {
	saveBuildInfo(t)

	SetBuildInfo("0.1.0-rc.1", "unknown", "unknown")
	if !IsPrerelease() {
		t.Error("IsPrerelease() = false, want true")
	}
	if !IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	SetBuildInfo("0.1.0", "abc", "2026-01-02")
	if IsPrerelease() {
		t.Error("IsPrerelease() = true, want false")
	}
	if IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2   string
		expected int
		wantErr  bool
	}{
		{"0.1.0", "0.2.0", -1, false},
		{"1.0.0", "1.0.0", 0, false},
		{"1.0.1", "1.0.0", 1, false},
		{"x", "1.0.0", 0, true},
		{"1.0.0", "y", 0, true},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.v1, tt.v2)
		if (err != nil) != tt.wantErr {
			t.Errorf("CompareVersions(%q, %q) error = %v, wantErr %v", tt.v1, tt.v2, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, got, tt.expected)
		}
	}
}
