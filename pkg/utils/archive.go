package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/txtar"
)

// MemoryFileSystem keeps files in memory. Paths are slash separated and
// cleaned. It backs txtar project bundles and tests.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]string
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string]string)}
}

func memPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *MemoryFileSystem) ReadFile(p string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[memPath(p)]
	if !ok {
		return "", fmt.Errorf("failed to read file %s: %w", p, os.ErrNotExist)
	}
	return content, nil
}

func (m *MemoryFileSystem) ListMarkdown(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := memPath(dir) + "/"
	if prefix == "./" {
		prefix = ""
	}
	var names []string
	for p := range m.files {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok || strings.Contains(rest, "/") || !strings.HasSuffix(rest, ".md") {
			continue
		}
		names = append(names, rest)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryFileSystem) WriteFile(p, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[memPath(p)] = content
	return nil
}

func (m *MemoryFileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[memPath(p)]
	return ok
}

// Paths returns all stored paths, sorted.
func (m *MemoryFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Archive packs all files below root into a txtar archive. Names are
// stored relative to root so ParseArchive can load them again.
func (m *MemoryFileSystem) Archive(root, comment string) *txtar.Archive {
	ar := &txtar.Archive{Comment: []byte(comment)}
	prefix := memPath(root) + "/"
	for _, p := range m.Paths() {
		name := p
		if prefix != "./" {
			var ok bool
			if name, ok = strings.CutPrefix(p, prefix); !ok {
				continue
			}
		}
		content, _ := m.ReadFile(p)
		ar.Files = append(ar.Files, txtar.File{Name: name, Data: []byte(content)})
	}
	return ar
}

// SaveArchive writes all files below root to a txtar file on disk.
func (m *MemoryFileSystem) SaveArchive(file, root, comment string) error {
	f, err := SafeCreateFile(file)
	if err != nil {
		return err
	}
	if _, err := f.Write(txtar.Format(m.Archive(root, comment))); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write archive %s: %w", file, err)
	}
	return f.Close()
}

// ParseArchive loads a txtar project bundle. File names are placed below root.
func ParseArchive(data []byte, root string) *MemoryFileSystem {
	fs := NewMemoryFileSystem()
	for _, f := range txtar.Parse(data).Files {
		fs.files[memPath(path.Join(root, f.Name))] = string(f.Data)
	}
	return fs
}

// LoadArchive reads a txtar project bundle from disk.
func LoadArchive(file, root string) (*MemoryFileSystem, error) {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", file, err)
	}
	return ParseArchive(data, root), nil
}
