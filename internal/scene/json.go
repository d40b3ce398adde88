package scene

import (
	"encoding/json"
	"fmt"
	"image"
	"slices"

	"github.com/jsvensson/figdraw/internal/color"
	"github.com/jsvensson/figdraw/internal/shape"
)

// figureFields lists the exact geometry fields each figure type requires.
// A figure entry must match its type's list exactly, no extras and no
// omissions, after "type" and "color" have been taken out.
var figureFields = map[string][]string{
	"point":     {"x", "y"},
	"circle":    {"x", "y", "radius"},
	"square":    {"x", "y", "size"},
	"rectangle": {"x", "y", "height", "width"},
	"polygon":   {"points"},
}

type rawScene struct {
	Palette map[string]string `json:"Palette"`
	Screen  *rawScreen        `json:"Screen"`
	Figures []json.RawMessage `json:"Figures"`
}

// rawScreen uses pointer fields so missing keys are distinguishable from
// zero values.
type rawScreen struct {
	Width   *int    `json:"width"`
	Height  *int    `json:"height"`
	BGColor *string `json:"bg_color"`
	FGColor *string `json:"fg_color"`
}

// ParseJSON parses a JSON scene document. The palette is resolved first,
// then the screen parameters, then the figures in input order.
func ParseJSON(src []byte) (*Scene, error) {
	var raw rawScene
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("parsing scene JSON: %w", err)
	}

	palette := make(color.Palette, len(raw.Palette))
	for name, token := range raw.Palette {
		c, err := color.ParseToken(token)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", name, err)
		}
		palette[name] = c
	}

	if raw.Screen == nil {
		return nil, fmt.Errorf(`scene is missing the required "Screen" section`)
	}
	screen, err := parseScreen(raw.Screen, palette)
	if err != nil {
		return nil, err
	}

	if raw.Figures == nil {
		return nil, fmt.Errorf(`scene is missing the required "Figures" section`)
	}
	figures := make([]shape.Shape, 0, len(raw.Figures))
	for i, entry := range raw.Figures {
		fig, err := parseFigure(entry, palette, screen.Foreground)
		if err != nil {
			return nil, fmt.Errorf("figure %d: %w", i, err)
		}
		figures = append(figures, fig)
	}

	return &Scene{Palette: palette, Screen: screen, Figures: figures}, nil
}

func parseScreen(raw *rawScreen, palette color.Palette) (Screen, error) {
	if raw.Width == nil {
		return Screen{}, fmt.Errorf(`screen is missing the required "width" key`)
	}
	if raw.Height == nil {
		return Screen{}, fmt.Errorf(`screen is missing the required "height" key`)
	}
	if raw.BGColor == nil {
		return Screen{}, fmt.Errorf(`screen is missing the required "bg_color" key`)
	}
	if raw.FGColor == nil {
		return Screen{}, fmt.Errorf(`screen is missing the required "fg_color" key`)
	}

	bg, err := palette.Resolve(*raw.BGColor)
	if err != nil {
		return Screen{}, fmt.Errorf("screen bg_color: %w", err)
	}
	fg, err := palette.Resolve(*raw.FGColor)
	if err != nil {
		return Screen{}, fmt.Errorf("screen fg_color: %w", err)
	}

	return Screen{
		Width:      *raw.Width,
		Height:     *raw.Height,
		Background: bg,
		Foreground: fg,
	}, nil
}

// parseFigure turns one Figures entry into a shape. The "type" field selects
// the variant, "color" resolves through the palette with the screen
// foreground as default, and the remaining fields are checked exactly
// against the variant's geometry.
func parseFigure(entry json.RawMessage, palette color.Palette, fallback color.Color) (shape.Shape, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, fmt.Errorf("parsing figure object: %w", err)
	}

	kindRaw, ok := fields["type"]
	if !ok {
		return nil, fmt.Errorf(`figure is missing the required "type" field`)
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil {
		return nil, fmt.Errorf(`figure "type" must be a string: %w`, err)
	}
	delete(fields, "type")

	col := fallback
	if colRaw, ok := fields["color"]; ok {
		var token string
		if err := json.Unmarshal(colRaw, &token); err != nil {
			return nil, fmt.Errorf(`%s "color" must be a string token: %w`, kind, err)
		}
		var err error
		if col, err = palette.Resolve(token); err != nil {
			return nil, fmt.Errorf("%s color: %w", kind, err)
		}
		delete(fields, "color")
	}

	required, ok := figureFields[kind]
	if !ok {
		return nil, fmt.Errorf("unknown figure type %q", kind)
	}
	if err := checkFields(kind, fields, required); err != nil {
		return nil, err
	}

	switch kind {
	case "point":
		x, y, err := intFields(fields, "x", "y")
		if err != nil {
			return nil, fmt.Errorf("point: %w", err)
		}
		return shape.Point{X: x, Y: y, Color: col}, nil

	case "circle":
		x, y, err := intFields(fields, "x", "y")
		if err != nil {
			return nil, fmt.Errorf("circle: %w", err)
		}
		radius, err := intField(fields, "radius")
		if err != nil {
			return nil, fmt.Errorf("circle: %w", err)
		}
		return shape.Circle{X: x, Y: y, Radius: radius, Color: col}, nil

	case "square":
		x, y, err := intFields(fields, "x", "y")
		if err != nil {
			return nil, fmt.Errorf("square: %w", err)
		}
		size, err := intField(fields, "size")
		if err != nil {
			return nil, fmt.Errorf("square: %w", err)
		}
		return shape.NewSquare(x, y, size, col), nil

	case "rectangle":
		x, y, err := intFields(fields, "x", "y")
		if err != nil {
			return nil, fmt.Errorf("rectangle: %w", err)
		}
		height, err := intField(fields, "height")
		if err != nil {
			return nil, fmt.Errorf("rectangle: %w", err)
		}
		width, err := intField(fields, "width")
		if err != nil {
			return nil, fmt.Errorf("rectangle: %w", err)
		}
		return shape.Rectangle{X: x, Y: y, Height: height, Width: width, Color: col}, nil

	case "polygon":
		points, err := pointsField(fields["points"])
		if err != nil {
			return nil, fmt.Errorf("polygon: %w", err)
		}
		return shape.Polygon{Points: points, Color: col}, nil
	}

	return nil, fmt.Errorf("unknown figure type %q", kind)
}

// checkFields verifies that the remaining figure fields match the required
// set exactly.
func checkFields(kind string, fields map[string]json.RawMessage, required []string) error {
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%s is missing the required field %q", kind, name)
		}
	}
	if len(fields) != len(required) {
		for name := range fields {
			if !slices.Contains(required, name) {
				return fmt.Errorf("%s has unexpected field %q", kind, name)
			}
		}
	}
	return nil
}

func intField(fields map[string]json.RawMessage, name string) (int, error) {
	var v int
	if err := json.Unmarshal(fields[name], &v); err != nil {
		return 0, fmt.Errorf("field %q must be an integer: %w", name, err)
	}
	return v, nil
}

func intFields(fields map[string]json.RawMessage, a, b string) (int, int, error) {
	x, err := intField(fields, a)
	if err != nil {
		return 0, 0, err
	}
	y, err := intField(fields, b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func pointsField(raw json.RawMessage) ([]image.Point, error) {
	var pairs [][]int
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf(`field "points" must be an array of [x, y] pairs: %w`, err)
	}

	points := make([]image.Point, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("points[%d] has %d coordinates, want 2", i, len(pair))
		}
		points[i] = image.Point{X: pair[0], Y: pair[1]}
	}
	return points, nil
}
