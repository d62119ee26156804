package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stokea.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0644); err != nil {
		t.Fatalf("Failed to seed log: %v", err)
	}

	logger, file, err := SetupLogger(path)
	if err != nil {
		t.Fatalf("SetupLogger failed: %v", err)
	}
	logger.Printf("session %d opened", 3)
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "previous run\n") {
		t.Errorf("Expected previous content to be kept, got %q", content)
	}
	if !strings.Contains(content, "session 3 opened") {
		t.Errorf("Expected new line in log, got %q", content)
	}
}

func TestSetupLogger_NoFile(t *testing.T) {
	logger, file, err := SetupLogger("")
	if err != nil {
		t.Fatalf("SetupLogger failed: %v", err)
	}
	if logger == nil || file != nil {
		t.Errorf("Expected stderr logger without file, got %v %v", logger, file)
	}
}

func TestSetupLogger_BadPath(t *testing.T) {
	_, _, err := SetupLogger(filepath.Join(t.TempDir(), "missing", "stokea.log"))
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}
