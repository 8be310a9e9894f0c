package core

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// detectType returns a short upper-case label for the file's content type,
// such as "PNG" or "TXT"
func detectType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	ext := mtype.Extension()
	if ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return ""
}
