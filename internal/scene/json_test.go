package scene

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/jsvensson/figdraw/internal/color"
	"github.com/jsvensson/figdraw/internal/shape"
)

const sampleJSON = `{
  "Palette": {
    "night": "#191724",
    "love": "#eb6f92",
    "gold": "(246, 193, 119)"
  },
  "Screen": {
    "width": 320,
    "height": 200,
    "bg_color": "night",
    "fg_color": "love"
  },
  "Figures": [
    {"type": "point", "x": 5, "y": 5},
    {"type": "circle", "x": 160, "y": 100, "radius": 40, "color": "gold"},
    {"type": "square", "x": 20, "y": 20, "size": 10, "color": "#00ff00"},
    {"type": "rectangle", "x": 50, "y": 50, "height": 10, "width": 30, "color": "(1, 2, 3)"},
    {"type": "polygon", "points": [[0, 0], [10, 0], [5, 8]]}
  ]
}`

func TestParseJSON(t *testing.T) {
	sc, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Screen{
		Width:      320,
		Height:     200,
		Background: color.Color{R: 25, G: 23, B: 36},
		Foreground: color.Color{R: 235, G: 111, B: 146},
	}
	if sc.Screen != want {
		t.Errorf("screen = %+v, want %+v", sc.Screen, want)
	}

	if got := len(sc.Palette); got != 3 {
		t.Errorf("palette has %d entries, want 3", got)
	}
	if got := sc.Palette["gold"]; got != (color.Color{R: 246, G: 193, B: 119}) {
		t.Errorf("palette gold = %v, want rgb(246, 193, 119)", got)
	}
	if got := len(sc.Figures); got != 5 {
		t.Fatalf("parsed %d figures, want 5", got)
	}
}

func TestParseJSONFigureOrder(t *testing.T) {
	sc, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Squares construct rectangles, so figure 2 is a Rectangle.
	wantKinds := []string{"shape.Point", "shape.Circle", "shape.Rectangle", "shape.Rectangle", "shape.Polygon"}
	for i, fig := range sc.Figures {
		if got := fmt.Sprintf("%T", fig); got != wantKinds[i] {
			t.Errorf("figure %d is %s, want %s", i, got, wantKinds[i])
		}
	}
}

func TestParseJSONMinimalScene(t *testing.T) {
	src := `{
		"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#FFFFFF"},
		"Figures": [{"type": "point", "x": 5, "y": 5}]
	}`

	sc, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Figures) != 1 {
		t.Fatalf("parsed %d figures, want 1", len(sc.Figures))
	}

	point, ok := sc.Figures[0].(shape.Point)
	if !ok {
		t.Fatalf("figure is %T, want Point", sc.Figures[0])
	}
	want := shape.Point{X: 5, Y: 5, Color: color.Color{R: 255, G: 255, B: 255}}
	if point != want {
		t.Errorf("point = %+v, want %+v (foreground default)", point, want)
	}
}

func TestParseJSONSquareIsRectangle(t *testing.T) {
	src := `{
		"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#FFFFFF"},
		"Figures": [{"type": "square", "x": 4, "y": 4, "size": 6}]
	}`

	sc, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rect, ok := sc.Figures[0].(shape.Rectangle)
	if !ok {
		t.Fatalf("figure is %T, want Rectangle", sc.Figures[0])
	}
	if rect.Height != 6 || rect.Width != 6 {
		t.Errorf("square parsed as %dx%d rectangle, want 6x6", rect.Width, rect.Height)
	}
}

func TestParseJSONPolygonPoints(t *testing.T) {
	sc, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	poly, ok := sc.Figures[4].(shape.Polygon)
	if !ok {
		t.Fatalf("figure 4 is %T, want Polygon", sc.Figures[4])
	}
	want := []image.Point{{0, 0}, {10, 0}, {5, 8}}
	if len(poly.Points) != len(want) {
		t.Fatalf("polygon has %d points, want %d", len(poly.Points), len(want))
	}
	for i := range want {
		if poly.Points[i] != want[i] {
			t.Errorf("points[%d] = %v, want %v", i, poly.Points[i], want[i])
		}
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "missing screen",
			src:     `{"Figures": []}`,
			wantErr: `"Screen"`,
		},
		{
			name:    "missing figures",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}}`,
			wantErr: `"Figures"`,
		},
		{
			name:    "missing width",
			src:     `{"Screen": {"height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": []}`,
			wantErr: `"width"`,
		},
		{
			name:    "unknown figure type",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"type": "triangle", "x": 1, "y": 2}]}`,
			wantErr: "unknown figure type",
		},
		{
			name:    "circle missing radius",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"type": "circle", "x": 1, "y": 2}]}`,
			wantErr: `missing the required field "radius"`,
		},
		{
			name:    "point with unexpected field",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"type": "point", "x": 1, "y": 2, "radius": 3}]}`,
			wantErr: `unexpected field "radius"`,
		},
		{
			name:    "figure missing type",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"x": 1, "y": 2}]}`,
			wantErr: `"type"`,
		},
		{
			name:    "unresolvable color token",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"type": "point", "x": 1, "y": 2, "color": "red2"}]}`,
			wantErr: "unknown color token",
		},
		{
			name:    "unresolvable screen color",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "nope", "fg_color": "#ffffff"}, "Figures": []}`,
			wantErr: "bg_color",
		},
		{
			name:    "bad palette entry",
			src:     `{"Palette": {"red": "(1, 2)"}, "Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": []}`,
			wantErr: "palette",
		},
		{
			name:    "malformed points pair",
			src:     `{"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#ffffff"}, "Figures": [{"type": "polygon", "points": [[1, 2, 3]]}]}`,
			wantErr: "coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseJSONPaletteWinsOverLiteral(t *testing.T) {
	src := `{
		"Palette": {"#marker": "#112233"},
		"Screen": {"width": 10, "height": 10, "bg_color": "#000000", "fg_color": "#marker"},
		"Figures": []
	}`

	sc, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Screen.Foreground != (color.Color{R: 17, G: 34, B: 51}) {
		t.Errorf("foreground = %v, want palette entry rgb(17, 34, 51)", sc.Screen.Foreground)
	}
}
