// Package figdraw renders declarative scene descriptions to raster images.
// A scene file names a palette, screen parameters, and an ordered list of
// figures; Load resolves it and Render rasterizes it.
package figdraw

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/figdraw/internal/canvas"
	"github.com/jsvensson/figdraw/internal/scene"
)

var log = commonlog.GetLogger("figdraw")

// Load parses a scene file (JSON or HCL, selected by extension) into a
// fully resolved Scene.
func Load(path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	log.Debugf("loaded scene %s: %dx%d, %d palette entries, %d figures",
		path, sc.Screen.Width, sc.Screen.Height, len(sc.Palette), len(sc.Figures))
	return sc, nil
}

// Render rasterizes the scene onto a fresh canvas painted in the screen
// background color. Figures draw strictly in list order, so later figures
// paint over earlier ones.
func Render(sc *scene.Scene) (*canvas.Canvas, error) {
	cv, err := canvas.New(sc.Screen.Width, sc.Screen.Height, sc.Screen.Background)
	if err != nil {
		return nil, fmt.Errorf("creating canvas: %w", err)
	}

	for _, fig := range sc.Figures {
		cv.Draw(fig)
	}
	log.Debugf("rendered %d figures", len(sc.Figures))

	return cv, nil
}
