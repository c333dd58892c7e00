package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGo skips the calling test when the go toolchain is not on PATH.
func RequireGo(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("go")
	if err != nil {
		t.Skip("skipping: go toolchain not available")
	}
	return path
}

// BuildBinary compiles the buildtree command into a temporary directory and
// returns its path.
func BuildBinary(t *testing.T) string {
	t.Helper()
	goBin := RequireGo(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "buildtree")
	cmd := exec.Command(goBin, "build", "-o", bin, ".")
	cmd.Dir = RepoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// AssertGolden compares output with testdata/<goldenName> at the repository
// root. Setting UPDATE_GOLDEN rewrites the file first.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", goldenName)
	if os.Getenv("UPDATE_GOLDEN") != "" {
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
