package selector

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteHex is the palette as it appears in configuration and API
// payloads. Empty entries fall back to the defaults.
type PaletteHex struct {
	Background     string `yaml:"background" json:"background,omitempty"`
	Floor          string `yaml:"floor" json:"floor,omitempty"`
	FloorHighlight string `yaml:"floor_highlight" json:"floor_highlight,omitempty"`
	Group          string `yaml:"group" json:"group,omitempty"`
	GroupSelected  string `yaml:"group_selected" json:"group_selected,omitempty"`
	Shelf          string `yaml:"shelf" json:"shelf,omitempty"`
	ShelfHover     string `yaml:"shelf_hover" json:"shelf_hover,omitempty"`
	ShelfSelected  string `yaml:"shelf_selected" json:"shelf_selected,omitempty"`
	Occupied       string `yaml:"occupied" json:"occupied,omitempty"`
	OccupiedHover  string `yaml:"occupied_hover" json:"occupied_hover,omitempty"`
	Text           string `yaml:"text" json:"text,omitempty"`
}

// DefaultPaletteHex returns the stock colors.
func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Background:     "#f5f5f5",
		Floor:          "#d9d9d9",
		FloorHighlight: "#bae0ff",
		Group:          "#8c8c8c",
		GroupSelected:  "#4096ff",
		Shelf:          "#bfbfbf",
		ShelfHover:     "#91caff",
		ShelfSelected:  "#1677ff",
		Occupied:       "#ff4d4f",
		OccupiedHover:  "#ff7875",
		Text:           "#262626",
	}
}

// Palette holds parsed colors for every drawable state.
type Palette struct {
	Background     colorful.Color
	Floor          colorful.Color
	FloorHighlight colorful.Color
	Group          colorful.Color
	GroupSelected  colorful.Color
	Shelf          colorful.Color
	ShelfHover     colorful.Color
	ShelfSelected  colorful.Color
	Occupied       colorful.Color
	OccupiedHover  colorful.Color
	Text           colorful.Color
}

// DefaultPalette returns the parsed stock colors.
func DefaultPalette() Palette {
	p, err := ParsePalette(PaletteHex{})
	if err != nil {
		panic(err) // stock colors are constants
	}
	return p
}

// ParsePalette parses every entry of h, substituting defaults for empty
// ones. All invalid entries are reported together.
func ParsePalette(h PaletteHex) (Palette, error) {
	d := DefaultPaletteHex()
	var (
		p    Palette
		errs []error
	)
	parse := func(dst *colorful.Color, name, value, fallback string) {
		if value == "" {
			value = fallback
		}
		c, err := colorful.Hex(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("color %s %q: %w", name, value, err))
			c, _ = colorful.Hex(fallback)
		}
		*dst = c
	}

	parse(&p.Background, "background", h.Background, d.Background)
	parse(&p.Floor, "floor", h.Floor, d.Floor)
	parse(&p.FloorHighlight, "floor_highlight", h.FloorHighlight, d.FloorHighlight)
	parse(&p.Group, "group", h.Group, d.Group)
	parse(&p.GroupSelected, "group_selected", h.GroupSelected, d.GroupSelected)
	parse(&p.Shelf, "shelf", h.Shelf, d.Shelf)
	parse(&p.ShelfHover, "shelf_hover", h.ShelfHover, d.ShelfHover)
	parse(&p.ShelfSelected, "shelf_selected", h.ShelfSelected, d.ShelfSelected)
	parse(&p.Occupied, "occupied", h.Occupied, d.Occupied)
	parse(&p.OccupiedHover, "occupied_hover", h.OccupiedHover, d.OccupiedHover)
	parse(&p.Text, "text", h.Text, d.Text)

	return p, errors.Join(errs...)
}

// Hex converts the palette back to its hex form.
func (p Palette) Hex() PaletteHex {
	return PaletteHex{
		Background:     p.Background.Hex(),
		Floor:          p.Floor.Hex(),
		FloorHighlight: p.FloorHighlight.Hex(),
		Group:          p.Group.Hex(),
		GroupSelected:  p.GroupSelected.Hex(),
		Shelf:          p.Shelf.Hex(),
		ShelfHover:     p.ShelfHover.Hex(),
		ShelfSelected:  p.ShelfSelected.Hex(),
		Occupied:       p.Occupied.Hex(),
		OccupiedHover:  p.OccupiedHover.Hex(),
		Text:           p.Text.Hex(),
	}
}

// Style is the resolved look of one drawable.
type Style struct {
	Color   colorful.Color
	Opacity float32
}

// RGBA returns the style as straight (non-premultiplied) float RGBA.
func (s Style) RGBA() [4]float32 {
	c := s.Color.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), s.Opacity}
}

// Hex returns the color as "#rrggbb".
func (s Style) Hex() string {
	return s.Color.Hex()
}
