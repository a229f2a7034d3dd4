package vfs

import "time"

// Kind distinguishes directories from files
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a single filesystem entry keyed by its absolute path.
type Node struct {
	Path       string    `json:"path"`
	Kind       Kind      `json:"kind"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool {
	return n.Kind == KindDirectory
}

// Size returns the content length in bytes. Directories have size zero.
func (n *Node) Size() int {
	return len(n.Content)
}

// Entry is one immediate child returned by List
type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}
