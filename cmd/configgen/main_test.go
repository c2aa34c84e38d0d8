package main

import (
	"path/filepath"
	"testing"
)

func TestRunWritesAndValidatesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldtext.toml")
	if err := run([]string{"--output", path}); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := run([]string{"--validate", "--input", path}); err != nil {
		t.Fatalf("validate template: %v", err)
	}
	if err := run([]string{"--output", path}); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := run([]string{"--output", path, "--force", "--kind", "minimal"}); err != nil {
		t.Fatalf("forced minimal template: %v", err)
	}
	if err := run([]string{"--output", path, "--force", "--kind", "mirage"}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
