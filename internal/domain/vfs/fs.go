package vfs

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

// FS is an in-memory filesystem stored as a flat map from canonical path to
// node. There are no parent/child pointers: children are found by scanning
// keys for a matching prefix.
type FS struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	now   func() time.Time
}

// Option configures an FS
type Option func(*FS)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(fs *FS) {
		fs.now = now
	}
}

// New creates a filesystem containing only the root directory
func New(opts ...Option) *FS {
	fs := &FS{
		nodes: make(map[string]*Node),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}

	now := fs.now()
	fs.nodes[paths.Root] = &Node{
		Path:       paths.Root,
		Kind:       KindDirectory,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	return fs
}

// Create inserts a new file. The parent must exist and be a directory.
func (fs *FS) Create(path, content string) error {
	path = paths.Clean(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.nodes[path]; exists {
		return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	}
	if err := fs.checkParent(path); err != nil {
		return err
	}

	now := fs.now()
	fs.nodes[path] = &Node{
		Path:       path,
		Kind:       KindFile,
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	fs.touchParent(path, now)
	return nil
}

// Write creates or overwrites a file. Overwriting keeps CreatedAt.
func (fs *FS) Write(path, content string) error {
	path = paths.Clean(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	now := fs.now()
	if node, exists := fs.nodes[path]; exists {
		if node.IsDir() {
			return fmt.Errorf("%s: %w", path, ErrNotAFile)
		}
		node.Content = content
		node.ModifiedAt = now
		return nil
	}

	if err := fs.checkParent(path); err != nil {
		return err
	}
	fs.nodes[path] = &Node{
		Path:       path,
		Kind:       KindFile,
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	fs.touchParent(path, now)
	return nil
}

// Read returns the content of a file
func (fs *FS) Read(path string) (string, error) {
	path = paths.Clean(path)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, exists := fs.nodes[path]
	if !exists {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if node.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotAFile)
	}
	return node.Content, nil
}

// Delete removes a file. Directories cannot be deleted.
func (fs *FS) Delete(path string) error {
	path = paths.Clean(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	node, exists := fs.nodes[path]
	if !exists {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if node.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotAFile)
	}

	delete(fs.nodes, path)
	fs.touchParent(path, fs.now())
	return nil
}

// List returns the immediate children of dir ordered by name.
func (fs *FS) List(dir string) ([]Entry, error) {
	dir = paths.Clean(dir)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, exists := fs.nodes[dir]
	if !exists {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
	}
	if !node.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}

	entries := make([]Entry, 0)
	for p, child := range fs.nodes {
		name, ok := paths.ChildName(dir, p)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Kind: child.Kind})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// EnsureDirectory creates path and any missing ancestors as directories.
// Existing directories are left untouched.
func (fs *FS) EnsureDirectory(path string) error {
	path = paths.Clean(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.ensureDirectory(path)
}

func (fs *FS) ensureDirectory(path string) error {
	if node, exists := fs.nodes[path]; exists {
		if !node.IsDir() {
			return fmt.Errorf("%s: %w", path, ErrNotADirectory)
		}
		return nil
	}

	if err := fs.ensureDirectory(paths.Parent(path)); err != nil {
		return err
	}

	now := fs.now()
	fs.nodes[path] = &Node{
		Path:       path,
		Kind:       KindDirectory,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	fs.touchParent(path, now)
	return nil
}

// Stat returns a copy of the node at path
func (fs *FS) Stat(path string) (Node, error) {
	path = paths.Clean(path)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, exists := fs.nodes[path]
	if !exists {
		return Node{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return *node, nil
}

// Exists reports whether path is present
func (fs *FS) Exists(path string) bool {
	path = paths.Clean(path)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.nodes[path]
	return exists
}

// Len returns the number of nodes including the root
func (fs *FS) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.nodes)
}

// checkParent enforces the parent invariant. Caller holds the write lock.
func (fs *FS) checkParent(path string) error {
	if paths.IsRoot(path) {
		return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	}
	parent := paths.Parent(path)
	node, exists := fs.nodes[parent]
	if !exists {
		return fmt.Errorf("parent %s: %w", parent, ErrNotFound)
	}
	if !node.IsDir() {
		return fmt.Errorf("parent %s: %w", parent, ErrNotADirectory)
	}
	return nil
}

// touchParent bumps the parent directory's modification time.
func (fs *FS) touchParent(path string, now time.Time) {
	if parent, ok := fs.nodes[paths.Parent(path)]; ok && parent.Path != path {
		parent.ModifiedAt = now
	}
}
