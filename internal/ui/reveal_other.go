//go:build !windows && !darwin

package ui

import "os/exec"

// revealCommand opens path with the desktop's default handler. It returns
// nil when xdg-open is not installed.
func revealCommand(path string) *exec.Cmd {
	bin, err := exec.LookPath("xdg-open")
	if err != nil {
		return nil
	}
	return exec.Command(bin, path)
}
