package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// BuildBinary compiles the main package into a temporary directory.
func BuildBinary(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("skipping: go toolchain not available")
	}
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "tea-layershell")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = RepoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// Frame normalises a rendered frame for comparison: trailing blanks are
// dropped from every line and trailing empty lines are removed.
func Frame(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n"
}

// AssertGolden compares output with testdata/<goldenName> at the
// repository root. Set UPDATE_GOLDEN to rewrite the file.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", goldenName)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("failed to update golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", goldenName, err)
	}
	if string(data) != output {
		t.Fatalf("output mismatch for %s\nexpected:\n%s\nactual:\n%s", goldenName, string(data), output)
	}
}

// RepoRoot walks up from the working directory to the directory holding
// go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
