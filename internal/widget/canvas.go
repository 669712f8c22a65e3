package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type cell struct {
	r     rune
	style int
	// wide marks the trailing half of a double width rune.
	wide bool
}

// canvas is a grid of styled cells. Style 0 is the window background.
type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
}

func newCanvas(w, h int, base lipgloss.Style) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h), styles: []lipgloss.Style{base}}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) fill(area rect, style int) {
	for y := area.y; y < area.y+area.h; y++ {
		for x := area.x; x < area.x+area.w; x++ {
			if x >= 0 && y >= 0 && x < c.w && y < c.h {
				c.cells[y*c.w+x] = cell{r: ' ', style: style}
			}
		}
	}
}

// text writes s starting at (x, y), clipped to limit cells and to the canvas.
func (c *canvas) text(x, y int, s string, style, limit int) {
	if y < 0 || y >= c.h {
		return
	}
	end := min(x+limit, c.w)
	for _, r := range s {
		width := max(ansi.StringWidth(string(r)), 1)
		if x+width > end {
			return
		}
		if x >= 0 {
			c.cells[y*c.w+x] = cell{r: r, style: style}
			if width == 2 {
				c.cells[y*c.w+x+1] = cell{style: style, wide: true}
			}
		}
		x += width
	}
}

func (c *canvas) render() string {
	lines := make([]string, c.h)
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		var line strings.Builder
		current := -1
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(c.styles[current].Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.wide {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string, limit int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > limit {
		lines = lines[:max(limit, 0)]
	}
	return lines
}

func runeWidth(s string) int {
	return ansi.StringWidth(s)
}

// tail returns the longest suffix of s that fits in width cells.
func tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	start := len(runes)
	used := 0
	for start > 0 {
		w := max(ansi.StringWidth(string(runes[start-1])), 1)
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return string(runes[start:])
}
