//go:build !unix

package scanner

// Mount point detection is only implemented on unix; drives are separate
// roots elsewhere.
func deviceOf(path string) (uint64, bool) {
	return 0, false
}

func onDevice(path string, dev uint64) bool {
	return true
}
