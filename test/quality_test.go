package test

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getProjectRoot returns the project root directory based on this test file's location.
func getProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(filepath.Dir(filename))
}

// testFiles returns every _test.go file in the module except this one.
func testFiles(t *testing.T) []string {
	t.Helper()

	files := []string{}
	err := filepath.Walk(getProjectRoot(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != getProjectRoot() && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, "_test.go") && filepath.Base(path) != "quality_test.go" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}
	return files
}

// TestNoSkippedTests ensures no test files contain t.Skip() calls.
// A missing fixture is a failure, not a skip.
func TestNoSkippedTests(t *testing.T) {
	forbiddenPatterns := []string{
		"t.Skip(",
		"t.SkipNow(",
		"testing.Short()",
	}

	violations := []string{}
	for _, testFile := range testFiles(t) {
		f, err := os.Open(testFile)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", testFile, err)
		}

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}
			for _, pattern := range forbiddenPatterns {
				if strings.Contains(line, pattern) {
					violations = append(violations, fmt.Sprintf("%s:%d: contains forbidden pattern %q", testFile, lineNum, pattern))
				}
			}
		}
		f.Close()

		if err := scanner.Err(); err != nil {
			t.Fatalf("Error scanning %s: %v", testFile, err)
		}
	}

	for _, v := range violations {
		t.Errorf("  %s", v)
	}
}

// TestEveryPackageTested ensures each package under pkg/ and internal/ has tests.
func TestEveryPackageTested(t *testing.T) {
	tested := map[string]bool{}
	for _, f := range testFiles(t) {
		tested[filepath.Dir(f)] = true
	}

	root := getProjectRoot()
	for _, top := range []string{"pkg", "internal"} {
		err := filepath.Walk(filepath.Join(root, top), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			dir := filepath.Dir(path)
			if filepath.Base(dir) == "testutil" {
				return nil
			}
			if !tested[dir] {
				t.Errorf("Package %s has no tests", strings.TrimPrefix(dir, root+string(filepath.Separator)))
				tested[dir] = true
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Failed to walk %s: %v", top, err)
		}
	}
}
