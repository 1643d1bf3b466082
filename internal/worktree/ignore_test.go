package worktree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhyn0/oxide-git/testutils"
	"gopkg.in/src-d/go-billy.v4/memfs"
)

func TestIgnoreMatcher_Match(t *testing.T) {
	matcher := newTestMatcher(t,
		"# build output",
		"",
		"  target/  ",
		"*.log",
		"secret.txt",
	)

	tests := []struct {
		path string
		want bool
	}{
		{".ogit", true},
		{".ogit/objects/95/d09f", true},
		{"target", true},
		{"src/target/out.bin", true},
		{"targets", false},
		{"mytarget", false},
		{"debug.log", true},
		{"logs/app.log", true},
		{"catalog", false},
		{"secret.txt", true},
		{"secretXtxt", false},
		{"src/main.go", false},
		{"build output", false},
	}

	for _, tt := range tests {
		if got := matcher.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIgnoreMatcher_AlwaysIgnoresMetadataDir(t *testing.T) {
	matcher := newTestMatcher(t)

	if !matcher.Match(".ogit") {
		t.Error("Expected .ogit to be ignored without any patterns")
	}
	if matcher.Match("ogit") || matcher.Match("x.ogitignore") {
		t.Error("Only the exact metadata directory name should be ignored")
	}
}

func TestIgnoreMatcher_NilDefaultsToMetadataOnly(t *testing.T) {
	wt, store := newTestWorktree(t)
	if NewBuilder(wt, store, nil).ignore != metadataOnly || NewCleaner(wt, nil).ignore != metadataOnly {
		t.Fatal("Expected a nil matcher to fall back to the metadata only matcher")
	}

	for path, want := range map[string]bool{".ogit": true, "sub/.ogit/HEAD": true, "app.log": false, "ogit": false} {
		if got := metadataOnly.Match(path); got != want {
			t.Errorf("Match(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestReadIgnoreFile(t *testing.T) {
	fs := memfs.New()

	lines, err := ReadIgnoreFile(fs, ".ogitignore")
	if err != nil {
		t.Fatalf("Missing ignore file should not fail: %v", err)
	}
	if lines != nil {
		t.Errorf("Expected no lines, got %q", lines)
	}

	testutils.WriteFile(t, fs, ".ogitignore", []byte("*.log\r\nbuild/\n"), 0644)

	lines, err = ReadIgnoreFile(fs, ".ogitignore")
	if err != nil {
		t.Fatalf("Failed to read ignore file: %v", err)
	}
	if diff := cmp.Diff([]string{"*.log", "build/", ""}, lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}
