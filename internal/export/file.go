package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSink writes documents into a local directory.
type FileSink struct {
	logger *slog.Logger
	dir    string
}

// NewFileSink creates a sink rooted at dir. An empty dir means the working
// directory.
func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{dir: dir, logger: logger}
}

// Deliver writes the document and returns its path.
func (s *FileSink) Deliver(_ context.Context, doc Document) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	path := filepath.Join(s.dir, doc.Filename)
	if err := os.WriteFile(path, doc.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Info("exported csv", "path", path, "rows", len(doc.Rows))
	return path, nil
}
