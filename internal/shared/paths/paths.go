// Package paths provides the canonical virtual filesystem layout.
//
// All paths handled by the shell are absolute, "/"-separated and carry no
// trailing slash except for the root itself.
package paths

import (
	"fmt"
	"path"
	"strings"
)

// Root is the filesystem root.
const Root = "/"

// Top-level directories seeded at boot
const (
	Home     = "/home"
	System   = "/system"
	Profiles = "/system/profiles"
	Games    = "/games"
)

// Seed files
const (
	Readme       = "/system/readme.txt"
	Motd         = "/system/motd.txt"
	Instructions = "/games/instructions.txt"
)

// StandardDirectories returns all directories that exist at boot, parents first
func StandardDirectories() []string {
	return []string{
		Home,
		System,
		Profiles,
		Games,
	}
}

// HomeDir returns the home directory of a user
func HomeDir(username string) string {
	return path.Join(Home, username)
}

// ProfilePath returns the reserved location of a user's profile record
func ProfilePath(username string) string {
	return path.Join(Profiles, username)
}

// Clean canonicalizes an absolute path.
func Clean(p string) string {
	if p == "" {
		return Root
	}
	return path.Clean("/" + p)
}

// Resolve turns a user-supplied path into a canonical absolute path.
// Relative paths are resolved against base.
func Resolve(base, p string) string {
	if strings.HasPrefix(p, "/") {
		return Clean(p)
	}
	if base == "" {
		base = Root
	}
	return Clean(path.Join(base, p))
}

// Parent returns the parent directory of p. The parent of root is root.
func Parent(p string) string {
	return path.Dir(Clean(p))
}

// Base returns the last segment of p, or "/" for root.
func Base(p string) string {
	return path.Base(Clean(p))
}

// IsRoot reports whether p names the filesystem root
func IsRoot(p string) bool {
	return Clean(p) == Root
}

// ChildName returns the immediate child segment of dir that p lives under
// when p is a direct child of dir. ok is false for deeper descendants and
// for paths outside dir.
func ChildName(dir, p string) (name string, ok bool) {
	prefix := dir
	if prefix != Root {
		prefix += "/"
	}
	if p == dir || !strings.HasPrefix(p, prefix) {
		return "", false
	}
	rest := p[len(prefix):]
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// ValidateUsername checks if a username is usable as a path segment
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.ContainsAny(username, "/\\") || username == "." || username == ".." {
		return fmt.Errorf("username contains invalid path components")
	}
	return nil
}
