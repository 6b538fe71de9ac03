package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SaveFileName is the one canonical save under the save root.
const SaveFileName = "world0.save"

// CreateTemp opens files 0600; the save is chmodded to this before rename.
const saveFileMode = 0o644

// Store is the durable home of the encoded world record. There is a single
// slot and a single writer.
type Store interface {
	// Prepare makes the store ready for Load and Save. Idempotent.
	Prepare(ctx context.Context) error
	// Load returns the saved bytes; found is false when nothing was saved yet.
	Load(ctx context.Context) (data []byte, found bool, err error)
	// Save replaces the saved bytes.
	Save(ctx context.Context, data []byte) error
}

// FileStore keeps the save as <root>/world0.save on the local filesystem.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Path returns the canonical save file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.root, SaveFileName)
}

func (s *FileStore) Prepare(_ context.Context) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create save dir %s: %w", s.root, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.Path(), err)
	}
	return data, true, nil
}

// Save writes to a temp file in the save root and renames it over the
// canonical file, so a failed write leaves the previous save intact.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(s.root, SaveFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Chmod(saveFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.Path(), err)
	}
	return nil
}
