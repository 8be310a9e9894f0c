//go:build darwin

package ui

import "os/exec"

// revealCommand opens path in Finder
func revealCommand(path string) *exec.Cmd {
	return exec.Command("open", path)
}
