//go:build windows

package ui

import "os/exec"

// revealCommand opens path in Windows Explorer
func revealCommand(path string) *exec.Cmd {
	return exec.Command("explorer.exe", path)
}
