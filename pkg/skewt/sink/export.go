package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aerolab/skewt/pkg/errors"
	"github.com/aerolab/skewt/pkg/skewt"
)

// Handler receives the serialized SVG bytes instead of the default
// rasterize-and-save path. When a handler is supplied, no PNG is produced.
type Handler func(svg []byte) error

// ExportFilename builds the conventional export name for a diagram.
// Label parts are sanitized so the result is always a safe basename.
func ExportFilename(site, source string) string {
	return fmt.Sprintf("SkewT-%s-%s.png", sanitize(site), sanitize(source))
}

// Export implements the export contract: the scene is serialized to SVG and
// either handed to the custom handler, or rasterized and written to dir
// under the conventional filename. It returns the written path ("" when a
// handler consumed the output). Export failures are reported, never
// panicked, so the diagram stays interactive when export is unavailable.
func Export(scene *skewt.Scene, site, source, dir string, handler Handler) (string, error) {
	svg := RenderSVG(scene)

	if handler != nil {
		if err := handler(svg); err != nil {
			return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "export handler")
		}
		return "", nil
	}

	png, err := RenderPNG(scene)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFilename(site, source))
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return path, nil
}

// sanitize reduces a label to filename-safe characters: alphanumerics and
// underscores survive, every other run collapses to a single dash.
func sanitize(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "unknown"
	}
	return out
}
