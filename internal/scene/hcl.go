package scene

import (
	"fmt"
	"image"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/figdraw/internal/color"
	"github.com/jsvensson/figdraw/internal/shape"
)

// ParseHCL parses an HCL scene document. The palette block is parsed first
// since the screen and figure blocks may reference it as palette.<name>;
// figure blocks are processed in file order.
func ParseHCL(src []byte, filename string) (*Scene, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	body := file.Body.(*hclsyntax.Body)

	palette, err := parsePaletteBlock(body)
	if err != nil {
		return nil, err
	}

	ctx := buildEvalContext(palette)

	screen, err := parseScreenBlock(body, ctx, palette)
	if err != nil {
		return nil, err
	}

	var figures []shape.Shape
	for _, block := range body.Blocks {
		if block.Type != "figure" {
			continue
		}
		if len(block.Labels) != 1 {
			return nil, fmt.Errorf("figure block at %s needs exactly one type label", block.DefRange().String())
		}
		fig, err := parseFigureBlock(block, ctx, palette, screen.Foreground)
		if err != nil {
			return nil, fmt.Errorf("figure %d: %w", len(figures), err)
		}
		figures = append(figures, fig)
	}
	if figures == nil {
		return nil, fmt.Errorf("scene has no figure blocks")
	}

	return &Scene{Palette: palette, Screen: screen, Figures: figures}, nil
}

// parsePaletteBlock resolves the optional palette block. Entries are always
// literal color tokens, never references to other palette entries.
func parsePaletteBlock(body *hclsyntax.Body) (color.Palette, error) {
	palette := make(color.Palette)
	for _, block := range body.Blocks {
		if block.Type != "palette" {
			continue
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing palette: %s", diags.Error())
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating palette.%s: %s", name, diags.Error())
			}
			c, err := color.ParseToken(val.AsString())
			if err != nil {
				return nil, fmt.Errorf("palette.%s: %w", name, err)
			}
			palette[name] = c
		}
		return palette, nil
	}
	return palette, nil
}

type rawHCLScreen struct {
	Width   int    `hcl:"width"`
	Height  int    `hcl:"height"`
	BGColor string `hcl:"bg_color"`
	FGColor string `hcl:"fg_color"`
}

func parseScreenBlock(body *hclsyntax.Body, ctx *hcl.EvalContext, palette color.Palette) (Screen, error) {
	for _, block := range body.Blocks {
		if block.Type != "screen" {
			continue
		}
		var raw rawHCLScreen
		if diags := gohcl.DecodeBody(block.Body, ctx, &raw); diags.HasErrors() {
			return Screen{}, fmt.Errorf("decoding screen: %s", diags.Error())
		}

		bg, err := palette.Resolve(raw.BGColor)
		if err != nil {
			return Screen{}, fmt.Errorf("screen bg_color: %w", err)
		}
		fg, err := palette.Resolve(raw.FGColor)
		if err != nil {
			return Screen{}, fmt.Errorf("screen fg_color: %w", err)
		}

		return Screen{Width: raw.Width, Height: raw.Height, Background: bg, Foreground: fg}, nil
	}
	return Screen{}, fmt.Errorf("scene is missing the required screen block")
}

type rawHCLPoint struct {
	X     int     `hcl:"x"`
	Y     int     `hcl:"y"`
	Color *string `hcl:"color,optional"`
}

type rawHCLCircle struct {
	X      int     `hcl:"x"`
	Y      int     `hcl:"y"`
	Radius int     `hcl:"radius"`
	Color  *string `hcl:"color,optional"`
}

type rawHCLSquare struct {
	X     int     `hcl:"x"`
	Y     int     `hcl:"y"`
	Size  int     `hcl:"size"`
	Color *string `hcl:"color,optional"`
}

type rawHCLRectangle struct {
	X      int     `hcl:"x"`
	Y      int     `hcl:"y"`
	Height int     `hcl:"height"`
	Width  int     `hcl:"width"`
	Color  *string `hcl:"color,optional"`
}

type rawHCLPolygon struct {
	Points [][]int `hcl:"points"`
	Color  *string `hcl:"color,optional"`
}

func parseFigureBlock(block *hclsyntax.Block, ctx *hcl.EvalContext, palette color.Palette, fallback color.Color) (shape.Shape, error) {
	kind := block.Labels[0]
	decode := func(target any) error {
		if diags := gohcl.DecodeBody(block.Body, ctx, target); diags.HasErrors() {
			return fmt.Errorf("decoding %s: %s", kind, diags.Error())
		}
		return nil
	}
	resolve := func(token *string) (color.Color, error) {
		if token == nil {
			return fallback, nil
		}
		c, err := palette.Resolve(*token)
		if err != nil {
			return color.Color{}, fmt.Errorf("%s color: %w", kind, err)
		}
		return c, nil
	}

	switch kind {
	case "point":
		var raw rawHCLPoint
		if err := decode(&raw); err != nil {
			return nil, err
		}
		col, err := resolve(raw.Color)
		if err != nil {
			return nil, err
		}
		return shape.Point{X: raw.X, Y: raw.Y, Color: col}, nil

	case "circle":
		var raw rawHCLCircle
		if err := decode(&raw); err != nil {
			return nil, err
		}
		col, err := resolve(raw.Color)
		if err != nil {
			return nil, err
		}
		return shape.Circle{X: raw.X, Y: raw.Y, Radius: raw.Radius, Color: col}, nil

	case "square":
		var raw rawHCLSquare
		if err := decode(&raw); err != nil {
			return nil, err
		}
		col, err := resolve(raw.Color)
		if err != nil {
			return nil, err
		}
		return shape.NewSquare(raw.X, raw.Y, raw.Size, col), nil

	case "rectangle":
		var raw rawHCLRectangle
		if err := decode(&raw); err != nil {
			return nil, err
		}
		col, err := resolve(raw.Color)
		if err != nil {
			return nil, err
		}
		return shape.Rectangle{X: raw.X, Y: raw.Y, Height: raw.Height, Width: raw.Width, Color: col}, nil

	case "polygon":
		var raw rawHCLPolygon
		if err := decode(&raw); err != nil {
			return nil, err
		}
		col, err := resolve(raw.Color)
		if err != nil {
			return nil, err
		}
		points := make([]image.Point, len(raw.Points))
		for i, pair := range raw.Points {
			if len(pair) != 2 {
				return nil, fmt.Errorf("polygon points[%d] has %d coordinates, want 2", i, len(pair))
			}
			points[i] = image.Point{X: pair[0], Y: pair[1]}
		}
		return shape.Polygon{Points: points, Color: col}, nil
	}

	return nil, fmt.Errorf("unknown figure type %q", kind)
}

// buildEvalContext exposes the palette as palette.<name> variables plus the
// rgb, brighten, and darken functions to screen and figure expressions.
func buildEvalContext(palette color.Palette) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(palette))

	// Sort keys for deterministic diagnostics
	keys := make([]string, 0, len(palette))
	for k := range palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = cty.StringVal(palette[k].Hex())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"rgb":      makeRGBFunc(),
			"brighten": makeBrightenFunc(),
			"darken":   makeDarkenFunc(),
		},
	}
}

// makeRGBFunc creates an HCL function building a color from components.
// Usage: rgb(235, 111, 146)
func makeRGBFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from red, green, and blue components (0-255)",
		Params: []function.Parameter{
			{Name: "r", Type: cty.Number},
			{Name: "g", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var comps [3]uint8
			for i, arg := range args {
				n, _ := arg.AsBigFloat().Int64()
				if n < 0 || n > 255 {
					return cty.NilVal, fmt.Errorf("rgb component %d out of range: %d", i, n)
				}
				comps[i] = uint8(n)
			}
			c := color.Color{R: comps[0], G: comps[1], B: comps[2]}
			return cty.StringVal(c.Hex()), nil
		},
	})
}

// makeBrightenFunc creates an HCL function that brightens a color.
// Usage: brighten("#hex", 0.1) or brighten(palette.love, 0.1)
func makeBrightenFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Brightens a color by the given percentage (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "percentage", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			pct, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(color.Brighten(c, pct).Hex()), nil
		},
	})
}

// makeDarkenFunc creates an HCL function that darkens a color.
// Usage: darken("#hex", 0.1) or darken(palette.love, 0.1)
func makeDarkenFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Darkens a color by the given percentage (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "percentage", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			pct, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(color.Darken(c, pct).Hex()), nil
		},
	})
}
