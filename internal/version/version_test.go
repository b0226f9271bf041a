package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"bare", "1.2.3", "", "", "spanlight 1.2.3"},
		{"commit", "1.2.3", "abc123", "", "spanlight 1.2.3\ncommit: abc123"},
		{"full", "0.1.0-dev", "abc123", "2024-01-15T10:30:00Z", "spanlight 0.1.0-dev\ncommit: abc123\nbuilt:  2024-01-15T10:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.date)
			if got := Info(false); got != tt.want {
				t.Errorf("Info(false) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{"1.2.3", "0.1.0-dev", "1.2.3-rc.1+build.123", "weird"} {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() with colors off = %q, want %q", got, v)
		}
	}

	color.NoColor = false
	withVersion(t, "1.2.3", "", "")
	if got := Colored(); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored() = %q, expected escapes", got)
	}
}

// BenchmarkInfo benchmarks building the version string
func BenchmarkInfo(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Info(false)
	}
}
