package ui

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeLogAppendAndView(t *testing.T) {
	root := filepath.FromSlash("/watched")
	l := NewChangeLog(root)
	l.SetSize(80, 10)

	assert.Contains(t, l.View(), "Waiting for changes")

	at := time.Date(2024, 5, 1, 12, 30, 45, 0, time.Local)
	l.Append(model.Change{Path: filepath.Join(root, "docs", "a.txt"), Kind: observer.Created, At: at, Size: 2048, Type: "TXT"})
	l.Append(model.Change{Path: filepath.Join(root, "old.log"), Kind: observer.Erased, At: at})

	require.Equal(t, 2, l.Len())

	view := l.View()
	assert.Contains(t, view, "12:30:45")
	assert.Contains(t, view, filepath.Join("docs", "a.txt"))
	assert.Contains(t, view, "2.0 kB")
	assert.Contains(t, view, "TXT")
	assert.Contains(t, view, "old.log")
}

func TestChangeLogFormatLine(t *testing.T) {
	l := NewChangeLog("/r")
	at := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)

	erased := l.formatLine(model.Change{Path: "/r/gone", Kind: observer.Erased, At: at, Size: 99})
	assert.Contains(t, erased, "-")
	assert.NotContains(t, erased, "99 B", "erased entries carry no size")

	modified := l.formatLine(model.Change{Path: "/r/f", Kind: observer.Modified, At: at, Size: 99})
	assert.Contains(t, modified, "~")
	assert.Contains(t, modified, "99 B")
}

func TestChangeLogCap(t *testing.T) {
	l := NewChangeLog("/r")
	for i := range maxLogLines + 25 {
		l.Append(model.Change{Path: fmt.Sprintf("/r/f%d", i), Kind: observer.Created})
	}

	require.Equal(t, maxLogLines, l.Len())
	assert.Equal(t, "/r/f25", l.Changes()[0].Path, "oldest lines are dropped first")
}

func TestChangeLogFollow(t *testing.T) {
	l := NewChangeLog("/r")
	l.SetSize(60, 6)
	for i := range 50 {
		l.Append(model.Change{Path: fmt.Sprintf("/r/f%d", i), Kind: observer.Modified})
	}
	assert.True(t, l.Following())

	l.ScrollUp(3)
	assert.False(t, l.Following())

	// New lines no longer drag the view while scrolled back
	l.Append(model.Change{Path: "/r/new", Kind: observer.Created})
	assert.False(t, l.Following())

	l.Bottom()
	assert.True(t, l.Following())

	l.Top()
	assert.False(t, l.Following())

	l.Clear()
	assert.Zero(t, l.Len())
	assert.True(t, l.Following())
}
