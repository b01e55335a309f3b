// Package resources fetches named resources such as documents and textures.
//
// A resource name is a slash separated path without extension ("levels/intro"). Loaders
// match it against files named "<name>.<ext>", so "levels/intro" finds
// "levels/intro.json" or "levels/intro.yaml".
package resources

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when no resource matches the requested name.
var ErrNotFound = errors.New("resource not found")

// Loader fetches resources by name. Callers must close the returned reader.
type Loader interface {
	Load(name string) (io.ReadCloser, error)
}

// FSLoader loads resources from a filesystem.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader reading files below dir.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// NewArchiveLoader creates a loader reading from an in-memory zip archive.
func NewArchiveLoader(data []byte) (*FSLoader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return NewFSLoader(r), nil
}

// Load opens the file called name, or else the first file whose name without extension
// is name.
func (l *FSLoader) Load(name string) (io.ReadCloser, error) {
	resolved, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := l.fsys.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return f, nil
}

// Resolve returns the file a resource name refers to.
func (l *FSLoader) Resolve(name string) (string, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if info, err := fs.Stat(l.fsys, name); err == nil && info.Mode().IsRegular() {
		return name, nil
	}

	matches, err := fs.Glob(l.fsys, escapeGlob(name)+".*")
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", name, err)
	}
	for _, m := range matches {
		if info, err := fs.Stat(l.fsys, m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// ReadAll loads a resource fully into memory.
func ReadAll(l Loader, name string) ([]byte, error) {
	rc, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

func escapeGlob(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
