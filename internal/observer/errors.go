package observer

import "errors"

// Configuration errors returned by New
var (
	ErrEmptyPath         = errors.New("observer: empty path")
	ErrInvalidInterval   = errors.New("observer: negative poll interval")
	ErrNilHandler        = errors.New("observer: nil handler")
	ErrUnsupportedTarget = errors.New("observer: target is neither a regular file nor a directory")
)
