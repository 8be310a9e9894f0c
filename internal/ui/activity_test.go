package ui

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquarifyDirect(t *testing.T) {
	root := &activityItem{
		size: 300,
		children: []*activityItem{
			{size: 100},
			{size: 100},
			{size: 100},
		},
	}

	rect := squarify.Rect{X: 0, Y: 0, W: 76, H: 22}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// Squarify returns the children at depth 0, not the root
	depth0 := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
		}
	}
	assert.Equal(t, 3, depth0)
}

func recordN(m *ActivityMap, root, rel string, kind observer.ChangeKind, n int) {
	for range n {
		m.Record(model.Change{Path: filepath.Join(root, rel), Kind: kind})
	}
}

func TestActivityLayout(t *testing.T) {
	root := filepath.FromSlash("/watched")
	m := NewActivityMap(root)
	m.SetSize(60, 20)

	recordN(&m, root, "src/main.go", observer.Modified, 40)
	recordN(&m, root, "docs/a.md", observer.Created, 10)
	recordN(&m, root, "README", observer.Erased, 5)

	blocks := m.Blocks()
	require.Len(t, blocks, 3)

	byLabel := map[string]ActivityBlock{}
	area := 0
	for _, b := range blocks {
		byLabel[b.Label] = b
		area += b.Width * b.Height

		// Every block stays inside the content area
		assert.GreaterOrEqual(t, b.X, 0)
		assert.GreaterOrEqual(t, b.Y, 0)
		assert.LessOrEqual(t, b.X+b.Width, 58, "block %s overflows horizontally", b.Label)
		assert.LessOrEqual(t, b.Y+b.Height, 18, "block %s overflows vertically", b.Label)
	}

	require.Contains(t, byLabel, "src")
	require.Contains(t, byLabel, "docs")
	require.Contains(t, byLabel, rootBucket)

	assert.Equal(t, int64(40), byLabel["src"].Count)
	assert.Equal(t, observer.Modified, byLabel["src"].Kind)
	assert.Equal(t, observer.Erased, byLabel[rootBucket].Kind)

	src := byLabel["src"].Width * byLabel["src"].Height
	docs := byLabel["docs"].Width * byLabel["docs"].Height
	assert.Greater(t, src, docs, "busier bucket should get more area")

	// Rounding may lose a few cells, never gain
	assert.LessOrEqual(t, area, 58*18)
	assert.Greater(t, area, 58*18*9/10)
}

func TestActivityFolding(t *testing.T) {
	root := "/watched"
	m := NewActivityMap(root)
	m.SetSize(200, 60)

	for i := range maxActivityBlocks + 5 {
		recordN(&m, root, fmt.Sprintf("dir%02d/f", i), observer.Created, 100-i)
	}

	blocks := m.Blocks()
	require.Len(t, blocks, maxActivityBlocks+1)

	var folded []ActivityBlock
	for _, b := range blocks {
		if b.Folded {
			folded = append(folded, b)
		}
	}
	require.Len(t, folded, 1)
	assert.Equal(t, "5 more", folded[0].Label)
}

func TestActivityNoFoldForSingleRemainder(t *testing.T) {
	root := "/watched"
	m := NewActivityMap(root)
	m.SetSize(200, 60)

	for i := range maxActivityBlocks + 1 {
		recordN(&m, root, fmt.Sprintf("dir%02d/f", i), observer.Created, 1)
	}

	for _, b := range m.Blocks() {
		assert.False(t, b.Folded)
	}
	assert.Len(t, m.Blocks(), maxActivityBlocks+1)
}

func TestActivityClearAndTinySize(t *testing.T) {
	root := "/watched"
	m := NewActivityMap(root)
	recordN(&m, root, "a/b", observer.Created, 1)

	// No size yet, nothing laid out
	assert.Empty(t, m.Blocks())

	m.SetSize(30, 10)
	assert.Len(t, m.Blocks(), 1)
	assert.NotEmpty(t, m.View())

	m.Clear()
	assert.Empty(t, m.Blocks())
	assert.Contains(t, m.View(), "No activity yet")
}

func TestTopLevel(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"file.txt", rootBucket},
		{filepath.Join("src", "main.go"), "src"},
		{filepath.Join("a", "b", "c"), "a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, topLevel(tt.rel), tt.rel)
	}
}
