package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	"github.com/andrescamacho/redcycle-go/internal/domain/session"
)

// FileSessionRepository implements session.Repository as one JSON object of
// storage key → text in a local file
type FileSessionRepository struct {
	path string
}

// NewFileSessionRepository creates a repository backed by the file at path
func NewFileSessionRepository(path string) *FileSessionRepository {
	return &FileSessionRepository{path: path}
}

// Path returns the backing file location
func (r *FileSessionRepository) Path() string {
	return r.path
}

// Load reads the file. A missing file is an empty snapshot; a file that is
// not a JSON object is logged and treated as empty.
func (r *FileSessionRepository) Load(ctx context.Context) (*session.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &session.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelWarn, "session file is malformed, defaults kept", map[string]interface{}{
			"path":  r.path,
			"error": err.Error(),
		})
		return &session.Snapshot{}, nil
	}

	snap, issues := DecodeSnapshot(entries)
	logDecodeIssues(ctx, r.path, issues)
	return snap, nil
}

// Save writes the snapshot to a temporary file and renames it over the old one
func (r *FileSessionRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	entries, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear deletes the file; a missing file is already clear
func (r *FileSessionRepository) Clear(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}
