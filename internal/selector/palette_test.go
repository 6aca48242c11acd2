package selector

import (
	"strings"
	"testing"
)

func TestParsePaletteDefaults(t *testing.T) {
	p, err := ParsePalette(PaletteHex{})
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}
	if got, want := p.Hex(), DefaultPaletteHex(); got != want {
		t.Errorf("ParsePalette(empty).Hex() = %+v, want %+v", got, want)
	}
}

func TestParsePaletteOverrides(t *testing.T) {
	p, err := ParsePalette(PaletteHex{ShelfSelected: "#00ff00", Occupied: "#123456"})
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}
	if got := p.ShelfSelected.Hex(); got != "#00ff00" {
		t.Errorf("ShelfSelected = %s, want #00ff00", got)
	}
	if got := p.Occupied.Hex(); got != "#123456" {
		t.Errorf("Occupied = %s, want #123456", got)
	}
	if got := p.Shelf.Hex(); got != DefaultPaletteHex().Shelf {
		t.Errorf("Shelf = %s, want default", got)
	}
}

func TestParsePaletteInvalid(t *testing.T) {
	p, err := ParsePalette(PaletteHex{Floor: "green", Text: "#12"})
	if err == nil {
		t.Fatal("ParsePalette() accepted invalid colors")
	}
	for _, name := range []string{"floor", "text"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
	if got := p.Floor.Hex(); got != DefaultPaletteHex().Floor {
		t.Errorf("invalid Floor = %s, want fallback to default", got)
	}
}

func TestStyleRGBA(t *testing.T) {
	p, _ := ParsePalette(PaletteHex{Shelf: "#ff0000"})
	rgba := Style{Color: p.Shelf, Opacity: 0.5}.RGBA()
	if rgba != [4]float32{1, 0, 0, 0.5} {
		t.Errorf("RGBA() = %v, want [1 0 0 0.5]", rgba)
	}
}
