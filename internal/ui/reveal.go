package ui

import (
	"errors"
	"os"
	"path/filepath"
)

var errNoFileManager = errors.New("no file manager available")

// revealTarget returns the directory to open for a watched target: the
// target itself when it is a directory, otherwise its parent
func revealTarget(target string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// openInFileManager opens the directory holding target without waiting
// for the file manager to exit
func openInFileManager(target string) error {
	cmd := revealCommand(revealTarget(target))
	if cmd == nil {
		return errNoFileManager
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
