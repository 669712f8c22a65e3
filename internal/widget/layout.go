package widget

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

const defaultInputWidth = 20

type kind int

const (
	kindSpace kind = iota
	kindText
	kindButton
	kindInput
	kindGroup
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(p runtime.Point) bool {
	return runtime.Rect{X: float32(r.x), Y: float32(r.y), Width: float32(r.w), Height: float32(r.h)}.Contains(p)
}

func (r rect) bounds() runtime.Rect {
	return runtime.Rect{X: float32(r.x), Y: float32(r.y), Width: float32(r.w), Height: float32(r.h)}
}

type node struct {
	kind     kind
	id       string
	area     rect
	element  ui.Element
	children []*node
}

// layout places el at (x, y) within a space of maxW by maxH cells.
func layout(el ui.Element, x, y, maxW, maxH int, path string) *node {
	maxW, maxH = max(maxW, 0), max(maxH, 0)
	switch e := el.(type) {
	case Text:
		lines := strings.Split(e.Content, "\n")
		w := 0
		for _, line := range lines {
			w = max(w, ansi.StringWidth(line))
		}
		return &node{kind: kindText, element: e, area: rect{x, y, min(w, maxW), min(len(lines), maxH)}}
	case Button:
		w := ansi.StringWidth(e.Label) + 4
		return &node{kind: kindButton, id: keyed(e.ID, path), element: e, area: rect{x, y, min(w, maxW), min(1, maxH)}}
	case TextInput:
		w := e.Width
		if w <= 0 {
			w = defaultInputWidth
		}
		return &node{kind: kindInput, id: keyed(e.ID, path), element: e, area: rect{x, y, min(w, maxW), min(1, maxH)}}
	case Space:
		return &node{kind: kindSpace, element: e, area: rect{x, y, min(e.Width, maxW), min(e.Height, maxH)}}
	case Column:
		return layoutColumn(e, x, y, maxW, maxH, path)
	case Row:
		return layoutRow(e, x, y, maxW, maxH, path)
	case Container:
		return layoutContainer(e, x, y, maxW, maxH, path)
	}
	return &node{kind: kindSpace, element: el, area: rect{x, y, 0, 0}}
}

func keyed(id, path string) string {
	if id != "" {
		return id
	}
	return path
}

func childPath(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}

func layoutColumn(c Column, x, y, maxW, maxH int, path string) *node {
	n := &node{kind: kindGroup, element: c}
	cy := y + c.Padding
	innerW := maxW - 2*c.Padding
	w := 0
	for i, child := range c.Children {
		if i > 0 {
			cy += c.Spacing
		}
		remaining := y + maxH - c.Padding - cy
		laid := layout(child, x+c.Padding, cy, innerW, remaining, childPath(path, i))
		n.children = append(n.children, laid)
		cy += laid.area.h
		w = max(w, laid.area.w)
	}
	n.area = rect{x, y, min(w+2*c.Padding, maxW), min(cy-y+c.Padding, maxH)}
	return n
}

func layoutRow(r Row, x, y, maxW, maxH int, path string) *node {
	n := &node{kind: kindGroup, element: r}
	cx := x + r.Padding
	innerH := maxH - 2*r.Padding
	h := 0
	for i, child := range r.Children {
		if i > 0 {
			cx += r.Spacing
		}
		remaining := x + maxW - r.Padding - cx
		laid := layout(child, cx, y+r.Padding, remaining, innerH, childPath(path, i))
		n.children = append(n.children, laid)
		cx += laid.area.w
		h = max(h, laid.area.h)
	}
	n.area = rect{x, y, min(cx-x+r.Padding, maxW), min(h+2*r.Padding, maxH)}
	return n
}

func layoutContainer(c Container, x, y, maxW, maxH int, path string) *node {
	n := &node{kind: kindGroup, element: c}
	innerW, innerH := maxW-2*c.Padding, maxH-2*c.Padding
	child := layout(c.Child, x+c.Padding, y+c.Padding, innerW, innerH, childPath(path, 0))
	if !c.Center {
		n.children = []*node{child}
		n.area = rect{x, y, min(child.area.w+2*c.Padding, maxW), min(child.area.h+2*c.Padding, maxH)}
		return n
	}
	dx := max((innerW-child.area.w)/2, 0)
	dy := max((innerH-child.area.h)/2, 0)
	n.children = []*node{shift(child, dx, dy)}
	n.area = rect{x, y, maxW, maxH}
	return n
}

func shift(n *node, dx, dy int) *node {
	n.area.x += dx
	n.area.y += dy
	for _, child := range n.children {
		shift(child, dx, dy)
	}
	return n
}

// walk visits n and its descendants depth first.
func walk(n *node, visit func(*node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.children {
		walk(child, visit)
	}
}
