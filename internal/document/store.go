package document

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/buildtree/internal/tree"
)

// Store persists one tree at Path.
type Store struct {
	Path string
}

// NewStore returns a store for path with a document extension ensured.
func NewStore(path string) *Store {
	return &Store{Path: EnsureExtension(path)}
}

// Exists reports whether a regular file is present at the store path.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && info.Mode().IsRegular()
}

// Load decodes the file at Path into a rebuilt tree.
func (s *Store) Load() (*tree.Tree, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open tree document: %w", err)
	}
	defer f.Close()

	doc, err := CodecFor(s.Path).Decode(bufio.NewReader(f))
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = s.Path
		}
		return nil, err
	}
	t, err := FromDocument(doc)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = s.Path
		}
		return nil, err
	}
	return t, nil
}

// Save writes t to Path through a temporary file in the same directory so
// that a failed write never truncates the previous document.
func (s *Store) Save(t *tree.Tree) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w := bufio.NewWriter(tmp)
	if err := CodecFor(s.Path).Encode(w, ToDocument(t)); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Chmod(s.fileMode()); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("set document mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		cleanup()
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// fileMode keeps the permissions of the document being replaced. New
// documents are 0644.
func (s *Store) fileMode() os.FileMode {
	if info, err := os.Stat(s.Path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
