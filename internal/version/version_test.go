package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, v, commit string) {
	t.Helper()
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = v, commit
	t.Cleanup(func() {
		Version, GitCommit = origVersion, origCommit
	})
}

func TestColoredPlain(t *testing.T) {
	override(t, "1.2.3-rc1", "")
	if got := Colored(false); got != "1.2.3-rc1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestColoredUnusualVersion(t *testing.T) {
	override(t, "nightly", "")
	if got := Colored(true); got != "nightly" {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"0.1.0", "", "0.1.0"},
		{"0.1.0", "abc123", "0.1.0+abc123"},
	}
	for _, tt := range tests {
		override(t, tt.version, tt.commit)
		if got := Fingerprint(); got != tt.want {
			t.Errorf("Fingerprint() = %q, want %q", got, tt.want)
		}
	}
}
