package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the session as a small JSON file, mode 0600 since the
// token inside grants full account access.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the persisted session. A missing file is not an error: it
// simply means nobody is logged in, so a zero session is returned.
func (f *FileStore) Load() (Session, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		// A corrupt session file is treated like no session at all;
		// the user just logs in again.
		return Session{}, nil
	}
	return s, nil
}

// Save writes the session, creating the parent directory when needed.
func (f *FileStore) Save(s Session) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

// Clear removes the persisted session. Clearing an already-empty store
// succeeds.
func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store used by tests and by flows that should
// not touch the filesystem.
type MemStore struct {
	s Session
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Load() (Session, error) { return m.s, nil }
func (m *MemStore) Save(s Session) error   { m.s = s; return nil }
func (m *MemStore) Clear() error           { m.s = Session{}; return nil }
