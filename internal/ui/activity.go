package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

const (
	maxActivityBlocks = 12 // busiest buckets shown before folding the rest into "N more"
	rootBucket        = "."
)

// bucket counts the changes below one top-level entry of the target
type bucket struct {
	name  string
	count int64
	last  observer.ChangeKind
}

// activityItem wraps a bucket for the squarify algorithm
type activityItem struct {
	bucket   *bucket
	more     int // number of folded buckets, 0 for a real bucket
	size     float64
	children []*activityItem
}

// Size implements squarify.TreeSizer
func (a *activityItem) Size() float64 {
	return a.size
}

// NumChildren implements squarify.TreeSizer
func (a *activityItem) NumChildren() int {
	return len(a.children)
}

// Child implements squarify.TreeSizer
func (a *activityItem) Child(i int) squarify.TreeSizer {
	return a.children[i]
}

// ActivityBlock is one laid-out rectangle of the activity map
type ActivityBlock struct {
	Label         string
	Count         int64
	Kind          observer.ChangeKind
	Folded        bool
	X, Y          int
	Width, Height int
}

// ActivityMap shows which parts of the target change the most, as a
// treemap sized by change count
type ActivityMap struct {
	root    string
	buckets map[string]*bucket
	blocks  []ActivityBlock
	width   int
	height  int
}

// NewActivityMap creates an empty map for changes below root
func NewActivityMap(root string) ActivityMap {
	return ActivityMap{
		root:    root,
		buckets: make(map[string]*bucket),
	}
}

// Record counts a change against its top-level bucket
func (m *ActivityMap) Record(c model.Change) {
	name := topLevel(c.Rel(m.root))
	b, ok := m.buckets[name]
	if !ok {
		b = &bucket{name: name}
		m.buckets[name] = b
	}
	b.count++
	b.last = c.Kind
	m.layout()
}

// Clear forgets all counted changes
func (m *ActivityMap) Clear() {
	clear(m.buckets)
	m.layout()
}

// SetSize sets the outer dimensions of the panel
func (m *ActivityMap) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.layout()
}

// Blocks returns the current layout
func (m ActivityMap) Blocks() []ActivityBlock {
	return m.blocks
}

// topLevel returns the first path element of a relative path, or the root
// bucket for entries directly inside the target
func topLevel(rel string) string {
	rel = filepath.ToSlash(rel)
	if filepath.IsAbs(rel) {
		return rel
	}
	first, _, found := strings.Cut(rel, "/")
	if !found {
		return rootBucket
	}
	return first
}

func (m *ActivityMap) contentSize() (int, int) {
	return m.width - 2, m.height - 2
}

// layout calculates block positions using the squarify library
func (m *ActivityMap) layout() {
	m.blocks = nil

	contentW, contentH := m.contentSize()
	if contentW < 1 || contentH < 1 || len(m.buckets) == 0 {
		return
	}

	items := make([]*activityItem, 0, len(m.buckets))
	for _, b := range m.buckets {
		items = append(items, &activityItem{bucket: b, size: float64(b.count)})
	}
	slices.SortFunc(items, func(a, b *activityItem) int {
		if a.size != b.size {
			if a.size > b.size {
				return -1
			}
			return 1
		}
		return strings.Compare(a.bucket.name, b.bucket.name)
	})

	// Only fold when at least two buckets would be hidden
	if len(items) > maxActivityBlocks+1 {
		folded := &activityItem{more: len(items) - maxActivityBlocks}
		for _, it := range items[maxActivityBlocks:] {
			folded.size += it.size
		}
		items = append(items[:maxActivityBlocks], folded)
	}

	root := &activityItem{children: items}
	for _, it := range items {
		root.size += it.size
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	for i, block := range blocks {
		item, ok := block.TreeSizer.(*activityItem)
		if !ok || i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round both edges so adjacent blocks share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		w := min(int(math.Round(block.X+block.W)), contentW) - x
		h := min(int(math.Round(block.Y+block.H)), contentH) - y
		if w < 1 || h < 1 {
			continue
		}

		ab := ActivityBlock{X: x, Y: y, Width: w, Height: h, Count: int64(item.size)}
		if item.bucket != nil {
			ab.Label = item.bucket.name
			ab.Kind = item.bucket.last
		} else {
			ab.Label = fmt.Sprintf("%d more", item.more)
			ab.Folded = true
		}
		m.blocks = append(m.blocks, ab)
	}
}

// View renders the activity map
func (m ActivityMap) View() string {
	contentW, contentH := m.contentSize()
	contentW = max(contentW, 1)
	contentH = max(contentH, 1)
	style := ActivityPanelStyle.Width(contentW).Height(contentH)

	if len(m.blocks) == 0 {
		return style.Render(lipgloss.NewStyle().Foreground(ColorMuted).Render("No activity yet"))
	}

	grid := make([][]rune, contentH)
	colors := make([][]lipgloss.Style, contentH)
	for i := range grid {
		grid[i] = make([]rune, contentW)
		colors[i] = make([]lipgloss.Style, contentW)
		for j := range grid[i] {
			grid[i][j] = ' '
			colors[i][j] = lipgloss.NewStyle()
		}
	}

	for _, block := range m.blocks {
		drawActivityBlock(grid, colors, block)
	}

	lines := make([]string, contentH)
	for y := range contentH {
		var line strings.Builder
		for x := range contentW {
			line.WriteString(colors[y][x].Render(string(grid[y][x])))
		}
		lines[y] = line.String()
	}

	return style.Render(strings.Join(lines, "\n"))
}

// drawActivityBlock fills one block, with its label and count on the first
// lines that fit
func drawActivityBlock(grid [][]rune, colors [][]lipgloss.Style, block ActivityBlock) {
	bg, fg := lipgloss.Color("#2D2D2D"), lipgloss.Color("#9CA3AF")
	if !block.Folded {
		switch block.Kind {
		case observer.Created:
			bg, fg = ColorCreatedBg, ColorCreated
		case observer.Modified:
			bg, fg = ColorModifiedBg, ColorModified
		case observer.Erased:
			bg, fg = ColorErasedBg, ColorErased
		}
	}
	fill := lipgloss.NewStyle().Background(bg).Foreground(fg)
	edge := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#4B5563"))

	gridH := len(grid)
	gridW := 0
	if gridH > 0 {
		gridW = len(grid[0])
	}

	for y := block.Y; y < block.Y+block.Height && y < gridH; y++ {
		for x := block.X; x < block.X+block.Width && x < gridW; x++ {
			grid[y][x] = ' '
			colors[y][x] = fill
		}
		// Right edge separates neighbours
		if x := block.X + block.Width - 1; block.Width > 1 && x < gridW {
			grid[y][x] = '│'
			colors[y][x] = edge
		}
	}

	textW := block.Width - 2
	if textW < 1 {
		return
	}
	text := []string{block.Label, humanize.Comma(block.Count)}
	for i, s := range text {
		y := block.Y + i
		if i >= block.Height || y >= gridH {
			break
		}
		runes := []rune(s)
		if len(runes) > textW {
			runes = append(runes[:max(textW-1, 0)], '…')
		}
		for j, r := range runes {
			x := block.X + 1 + j
			if x >= gridW {
				break
			}
			grid[y][x] = r
			colors[y][x] = fill.Bold(i == 0)
		}
	}
}
