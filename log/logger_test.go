package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetRotatingFileSinkWritesDegenerateInsertDiagnostic(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "octree_log_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logFile := filepath.Join(tempDir, "octree.log")
	SetRotatingFileSink(RotatingFileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	defer SetSink(os.Stdout)

	logger := New("octree")
	logger.Warningf("octree: object did not fit any child after subdivision: object %d, cause %v", 42, "node pool exhausted")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "object 42") {
		t.Errorf("expected rotated-file-backed log to contain the degenerate insert diagnostic; got: %s", content)
	}
}
