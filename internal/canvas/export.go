package canvas

import (
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes the canvas to w in the named format. Supported formats:
// png, jpeg, gif, bmp, tiff.
func (c *Canvas) Encode(w io.Writer, format string) error {
	switch format {
	case "png":
		return png.Encode(w, c.img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, c.img, nil)
	case "gif":
		return gif.Encode(w, c.img, nil)
	case "bmp":
		return bmp.Encode(w, c.img)
	case "tif", "tiff":
		return tiff.Encode(w, c.img, nil)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Save writes the canvas to a file, picking the encoding from the file
// extension.
func (c *Canvas) Save(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("output path %q has no extension to derive an image format from", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer f.Close()

	if err := c.Encode(f, format); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
