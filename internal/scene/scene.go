// Package scene parses declarative scene files into fully resolved screen
// parameters and an ordered figure list. Two front-ends share the same
// resolution rules: JSON and HCL, selected by file extension.
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsvensson/figdraw/internal/color"
	"github.com/jsvensson/figdraw/internal/shape"
)

// Screen holds the canvas dimensions and the scene-wide default colors.
// Background fills the canvas; Foreground is the default color for figures
// that don't declare one.
type Screen struct {
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
}

// Scene is a fully resolved scene description. Figures keep the input order;
// rendering them in that order gives last-writer-wins overlap semantics.
type Scene struct {
	Palette color.Palette
	Screen  Screen
	Figures []shape.Shape
}

// Load reads and parses a scene file. The front-end is chosen by extension:
// .json for the JSON format, .hcl for the HCL format.
func Load(path string) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(src)
	case ".hcl":
		return ParseHCL(src, path)
	default:
		return nil, fmt.Errorf("unsupported scene file extension %q: want .json or .hcl", ext)
	}
}
