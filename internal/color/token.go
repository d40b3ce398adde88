package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digitRuns = regexp.MustCompile(`[0-9]+`)

// ParseToken parses a literal color token: either a hex string like "#eb6f92"
// or a parenthesized triple like "(235, 111, 146)". Any other token is an
// error; symbolic names are only meaningful through a Palette.
func ParseToken(token string) (Color, error) {
	switch {
	case strings.HasPrefix(token, "#"):
		return ParseHex(token)
	case strings.HasPrefix(token, "("):
		return parseTriple(token)
	}
	return Color{}, fmt.Errorf("unknown color token %q: not a hex value, an rgb triple, or a palette name", token)
}

// parseTriple extracts the decimal runs from a "(r, g, b)" token and uses the
// first three as the color components. Separators and whitespace inside the
// parentheses are free-form.
func parseTriple(token string) (Color, error) {
	runs := digitRuns.FindAllString(token, 3)
	if len(runs) < 3 {
		return Color{}, fmt.Errorf("invalid rgb triple %q: need 3 components, found %d", token, len(runs))
	}
	var comps [3]uint8
	for i, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil || n > 255 {
			return Color{}, fmt.Errorf("invalid rgb triple %q: component %s out of range", token, run)
		}
		comps[i] = uint8(n)
	}
	return Color{R: comps[0], G: comps[1], B: comps[2]}, nil
}

// Palette maps scene-scoped color names to resolved colors.
type Palette map[string]Color

// Resolve resolves a color token against the palette: a token matching a
// palette name returns the palette entry; everything else falls through to
// literal parsing. Palette lookup always wins over literal interpretation.
func (p Palette) Resolve(token string) (Color, error) {
	if c, ok := p[token]; ok {
		return c, nil
	}
	return ParseToken(token)
}
