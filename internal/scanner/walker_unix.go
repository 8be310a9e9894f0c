//go:build unix

package scanner

import "golang.org/x/sys/unix"

// deviceOf returns the device id of the filesystem holding path
func deviceOf(path string) (uint64, bool) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, false
	}
	return uint64(stat.Dev), true
}

// onDevice reports whether the directory at path lives on dev.
// Stat failures count as a match so the walk still visits the directory.
func onDevice(path string, dev uint64) bool {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return true
	}
	return uint64(stat.Dev) == dev
}
