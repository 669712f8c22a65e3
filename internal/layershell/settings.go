// Package layershell holds the compositor-facing vocabulary: surface
// placement settings, the raw dispatch messages a compositor client reports,
// and the requests it accepts back from the engine.
package layershell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAnchor      = errors.New("invalid anchor")
	ErrInvalidLayer       = errors.New("invalid layer")
	ErrInvalidInteraction = errors.New("invalid keyboard interactivity")
)

// Anchor is a set of screen edges a layer surface is attached to.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// AnchorAll attaches a surface to every edge.
const AnchorAll = AnchorTop | AnchorBottom | AnchorLeft | AnchorRight

var anchorNames = []struct {
	anchor Anchor
	name   string
}{
	{AnchorTop, "top"},
	{AnchorBottom, "bottom"},
	{AnchorLeft, "left"},
	{AnchorRight, "right"},
}

func (a Anchor) Has(edge Anchor) bool {
	return a&edge == edge
}

func (a Anchor) String() string {
	if a == 0 {
		return "none"
	}
	parts := make([]string, 0, 4)
	for _, entry := range anchorNames {
		if a.Has(entry.anchor) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAnchor accepts edge names separated by '|', ',' or spaces.
func ParseAnchor(s string) (Anchor, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '+'
	})
	var out Anchor
	for _, field := range fields {
		found := false
		for _, entry := range anchorNames {
			if entry.name == field {
				out |= entry.anchor
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAnchor, field)
		}
	}
	return out, nil
}

// Layer is the stacking layer of a layer surface.
type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

var layerNames = map[Layer]string{
	LayerBackground: "background",
	LayerBottom:     "bottom",
	LayerTop:        "top",
	LayerOverlay:    "overlay",
}

func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

func ParseLayer(s string) (Layer, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for layer, name := range layerNames {
		if name == needle {
			return layer, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLayer, s)
}

// KeyboardInteractivity controls whether a surface receives keyboard focus.
type KeyboardInteractivity int

const (
	KeyboardNone KeyboardInteractivity = iota
	KeyboardExclusive
	KeyboardOnDemand
)

var interactivityNames = map[KeyboardInteractivity]string{
	KeyboardNone:      "none",
	KeyboardExclusive: "exclusive",
	KeyboardOnDemand:  "on-demand",
}

func (k KeyboardInteractivity) String() string {
	if name, ok := interactivityNames[k]; ok {
		return name
	}
	return fmt.Sprintf("keyboard(%d)", int(k))
}

func ParseKeyboardInteractivity(s string) (KeyboardInteractivity, error) {
	needle := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if needle == "ondemand" {
		needle = "on-demand"
	}
	for k, name := range interactivityNames {
		if name == needle {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInteraction, s)
}

// Margin is the distance from each anchored edge, in logical pixels.
type Margin struct {
	Top    int32 `toml:"top"`
	Right  int32 `toml:"right"`
	Bottom int32 `toml:"bottom"`
	Left   int32 `toml:"left"`
}

// Size is a surface size in compositor-logical pixels. A zero dimension
// lets the compositor stretch the surface along that axis.
type Size struct {
	Width  uint32
	Height uint32
}

// Point is a surface-local position in compositor-logical pixels.
type Point struct {
	X int32
	Y int32
}

// NewLayerShellSettings describes an additional layer surface.
type NewLayerShellSettings struct {
	Size                  *Size
	ExclusiveZone         *int32
	Anchor                Anchor
	Layer                 Layer
	Margin                *Margin
	KeyboardInteractivity KeyboardInteractivity
	UseLastOutput         bool
}

// PopupSettings places a popup relative to its parent surface.
type PopupSettings struct {
	Size     Size
	Position Point
}

type MenuDirection int

const (
	MenuDown MenuDirection = iota
	MenuUp
)

// MenuSettings describes a popup placed at the pointer position.
type MenuSettings struct {
	Size      Size
	Direction MenuDirection
}

// VirtualKeyboardSettings enables the virtual keyboard protocol with the
// given xkb keymap.
type VirtualKeyboardSettings struct {
	KeymapPath   string
	KeymapFormat string
}

// Settings configures the primary layer surface.
type Settings struct {
	Namespace             string
	Size                  *Size
	ExclusiveZone         int32
	Anchor                Anchor
	Layer                 Layer
	Margin                Margin
	KeyboardInteractivity KeyboardInteractivity
	VirtualKeyboard       *VirtualKeyboardSettings
}

func DefaultSettings() Settings {
	return Settings{
		Namespace:             "tea-layershell",
		Anchor:                AnchorAll,
		Layer:                 LayerTop,
		KeyboardInteractivity: KeyboardOnDemand,
	}
}
