package vfs

import (
	"fmt"

	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

// seedFiles holds the files present on every fresh boot
var seedFiles = []struct {
	path    string
	content string
}{
	{
		path:    paths.Readme,
		content: "Welcome to MiniOS 2.0!\nExplore the system with 'help' command.\nEarn points by using the system!",
	},
	{
		path:    paths.Motd,
		content: "Message of the Day:\nKeep learning and exploring!",
	},
	{
		path:    paths.Instructions,
		content: "Available games:\n- guess: Number guessing game\n- math: Math challenge\n- maze: Text-based maze\n- trivia: System knowledge quiz",
	},
}

// Bootstrap seeds the standard directory layout and system files.
// It is idempotent: existing files are not overwritten.
func Bootstrap(fs *FS) error {
	for _, dir := range paths.StandardDirectories() {
		if err := fs.EnsureDirectory(dir); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	for _, f := range seedFiles {
		if fs.Exists(f.path) {
			continue
		}
		if err := fs.Create(f.path, f.content); err != nil {
			return fmt.Errorf("failed to seed %s: %w", f.path, err)
		}
	}
	return nil
}

// EnsureHome creates a user's home directory with a welcome file.
func EnsureHome(fs *FS, username string) (string, error) {
	if err := paths.ValidateUsername(username); err != nil {
		return "", err
	}

	home := paths.HomeDir(username)
	if fs.Exists(home) {
		return home, nil
	}
	if err := fs.EnsureDirectory(home); err != nil {
		return "", fmt.Errorf("failed to create home directory: %w", err)
	}

	welcome := fmt.Sprintf("Welcome to your home directory, %s!\n\nTips:\n"+
		"- Use 'help' to see commands\n"+
		"- Play games with 'game' command\n"+
		"- Explore the file system with 'ls' and 'find'", username)
	if err := fs.Create(home+"/welcome.txt", welcome); err != nil {
		return "", fmt.Errorf("failed to create welcome file: %w", err)
	}
	return home, nil
}
