package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const warningBundle = `
[[files]]
name = "main.sg"
text = "let x = y;\n"

[[diagnostics]]
severity = "warning"
code = "W1"
message = "unused"

[[diagnostics.labels]]
file = "main.sg"
start = 8
end = 9
message = "not found"
`

const errorBundle = `
[[files]]
name = "main.sg"
text = "let x = y;\nlet z = x;\n"

[[diagnostics]]
severity = "error"
message = "second"

[[diagnostics.labels]]
file = "main.sg"
start = 15
end = 16

[[diagnostics]]
severity = "error"
message = "first"

[[diagnostics.labels]]
file = "main.sg"
start = 4
end = 5
`

const brokenBundle = `
[[files]]
name = "main.sg"
text = "let x = y;\n"

[[diagnostics]]
severity = "note"
message = "fine"

[[diagnostics.labels]]
file = "main.sg"
start = 0
end = 3

[[diagnostics]]
severity = "note"
message = "too far"

[[diagnostics.labels]]
file = "main.sg"
start = 5
end = 100
`

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderPretty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "warn.toml", warningBundle)
	res := runCLI(t, "", "render", path)
	if res.err != nil {
		t.Fatalf("render error: %v (stderr %q)", res.err, res.stderr)
	}
	want := strings.Join([]string{
		"warning[W1]: unused",
		"  ┌─ main.sg:1:9",
		"  │",
		"1 │ let x = y;",
		"  │         ^ not found",
		"  │",
	}, "\n") + "\n"
	if res.stdout != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", res.stdout, want)
	}
}

func TestRenderASCIIFromStdin(t *testing.T) {
	res := runCLI(t, warningBundle, "render", "--ascii", "-")
	if res.err != nil {
		t.Fatalf("render error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "--> main.sg:1:9") {
		t.Errorf("expected ASCII locus, got:\n%s", res.stdout)
	}
}

func TestRenderErrorsExitNonZero(t *testing.T) {
	path := writeFile(t, t.TempDir(), "err.toml", errorBundle)
	res := runCLI(t, "", "render", "--format", "short", "--sort", path)
	if !errors.Is(res.err, errFailed) {
		t.Fatalf("err = %v, want errFailed", res.err)
	}
	want := "main.sg:1:5: error: first\nmain.sg:2:5: error: second\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

const mixedBundle = `
[[files]]
name = "main.sg"
text = "let x = y;\nlet z = x;\n"

[[diagnostics]]
severity = "warning"
message = "early"

[[diagnostics.labels]]
file = "main.sg"
start = 0
end = 3

[[diagnostics]]
severity = "error"
message = "late"

[[diagnostics.labels]]
file = "main.sg"
start = 15
end = 16
`

func TestRenderSortPutsSeverityFirst(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mixed.toml", mixedBundle)
	res := runCLI(t, "", "render", "--format", "short", "--sort", path)
	if !errors.Is(res.err, errFailed) {
		t.Fatalf("err = %v, want errFailed", res.err)
	}
	want := "main.sg:2:5: error: late\nmain.sg:1:1: warning: early\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	usage := newRootCmd()
	render, _, err := usage.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	if help := render.Flags().Lookup("sort").Usage; !strings.Contains(help, "severity") {
		t.Errorf("--sort usage = %q, want it to mention severity", help)
	}
}

func TestRenderMinSeverity(t *testing.T) {
	path := writeFile(t, t.TempDir(), "err.toml", errorBundle)
	res := runCLI(t, "", "render", "--min-severity", "bug", path)
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("expected no output, got %q", res.stdout)
	}
}

func TestRenderMaxDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "err.toml", errorBundle)
	res := runCLI(t, "", "--max-diagnostics", "1", "render", "--format", "short", path)
	if res.stdout != "main.sg:2:5: error: second\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "1 more diagnostics not shown") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestRenderReportsUnresolvableLabel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.toml", brokenBundle)
	res := runCLI(t, "", "render", "--jobs", "2", path)
	if !errors.Is(res.err, errFailed) {
		t.Fatalf("err = %v, want errFailed", res.err)
	}
	if !strings.Contains(res.stdout, "note: fine") {
		t.Errorf("the resolvable diagnostic should still print:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout, "too far") {
		t.Errorf("the broken diagnostic should not print:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "diagnostic 1:") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestRenderJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "warn.toml", warningBundle)
	res := runCLI(t, "", "render", "--format", "json", path)
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	var payload struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if payload.Count != 1 || payload.Diagnostics[0].Severity != "warning" || payload.Diagnostics[0].Code != "W1" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestRenderUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	bundlePath := writeFile(t, dir, "warn.toml", warningBundle)
	cfgPath := writeFile(t, dir, "spanlight.toml", "[output]\nformat = \"short\"\n")

	res := runCLI(t, "", "--config", cfgPath, "render", bundlePath)
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	if res.stdout != "main.sg:1:9: warning[W1]: unused\n" {
		t.Errorf("stdout = %q", res.stdout)
	}

	// флаг важнее файла
	res = runCLI(t, "", "--config", cfgPath, "render", "--format", "json", bundlePath)
	if !strings.HasPrefix(res.stdout, "{") {
		t.Errorf("expected JSON, got %q", res.stdout)
	}
}

func TestRenderRejectsBadFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), "warn.toml", warningBundle)
	tests := [][]string{
		{"render", "--format", "xml", path},
		{"render", "--tab-width", "0", path},
		{"render", "--min-severity", "fatal", path},
		{"render", "--path-mode", "sideways", path},
		{"render", filepath.Join(t.TempDir(), "missing.toml")},
	}
	for _, args := range tests {
		res := runCLI(t, "", args...)
		if res.err == nil || errors.Is(res.err, errFailed) {
			t.Errorf("%v: err = %v, want a usage error", args, res.err)
		}
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := runCLI(t, "", "check", writeFile(t, dir, "warn.toml", warningBundle))
	if good.err != nil {
		t.Fatalf("check error: %v", good.err)
	}
	if good.stdout != "1 diagnostics, 1 labels, 0 problems\n" {
		t.Errorf("stdout = %q", good.stdout)
	}

	bad := runCLI(t, "", "check", writeFile(t, dir, "broken.toml", brokenBundle))
	if !errors.Is(bad.err, errFailed) {
		t.Fatalf("err = %v, want errFailed", bad.err)
	}
	if !strings.Contains(bad.stdout, "diagnostic 1 (note: too far) label 0") {
		t.Errorf("stdout = %q", bad.stdout)
	}
	if !strings.HasSuffix(bad.stdout, "2 diagnostics, 2 labels, 1 problems\n") {
		t.Errorf("stdout = %q", bad.stdout)
	}
}

func TestPackInlinesSources(t *testing.T) {
	dir := t.TempDir()
	srcPath := writeFile(t, dir, "main.sg", "let x = y;\n")
	doc := strings.Replace(warningBundle, `text = "let x = y;\n"`, `path = "main.sg"`, 1)
	bundlePath := writeFile(t, dir, "warn.toml", doc)
	packed := filepath.Join(dir, "warn.msgpack")

	res := runCLI(t, "", "pack", bundlePath, packed)
	if res.err != nil {
		t.Fatalf("pack error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "packed 1 files and 1 diagnostics") {
		t.Errorf("stderr = %q", res.stderr)
	}

	if err := os.Remove(srcPath); err != nil {
		t.Fatal(err)
	}
	res = runCLI(t, "", "render", "--format", "short", packed)
	if res.err != nil {
		t.Fatalf("render packed: %v", res.err)
	}
	if res.stdout != "main.sg:1:9: warning[W1]: unused\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "", "version", "--format", "json", "--full")
	if res.err != nil {
		t.Fatal(res.err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "spanlight" || payload.Version == "" || payload.GitCommit == "" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestTimingsAndTrace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "warn.toml", warningBundle)
	res := runCLI(t, "", "--timings", "--trace-level", "phase", "render", path)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stderr, "timings:") {
		t.Errorf("missing timings in stderr:\n%s", res.stderr)
	}
	for _, phase := range []string{"load", "render", "write"} {
		if !strings.Contains(res.stderr, phase) {
			t.Errorf("stderr does not mention phase %q:\n%s", phase, res.stderr)
		}
	}
}

func TestColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    colorMode
		wantErr bool
	}{
		{"", colorModeAuto, false},
		{"AUTO", colorModeAuto, false},
		{"on", colorModeOn, false},
		{"never", colorModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readColorMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readColorMode(%q) = %q, %v", tt.in, got, err)
		}
	}

	var buf bytes.Buffer
	if shouldColor(colorModeAuto, &buf) {
		t.Error("auto mode should not color a buffer")
	}
	if !shouldColor(colorModeOn, &buf) {
		t.Error("on mode should always color")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "warn.toml", warningBundle)
	heap := filepath.Join(dir, "heap.pprof")
	res := runCLI(t, "", "--mem-profile", heap, "check", path)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if info, err := os.Stat(heap); err != nil || info.Size() == 0 {
		t.Errorf("heap profile not written: %v", err)
	}
}
