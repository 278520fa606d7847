// Package textmetrics measures rendered text width and re-wraps strings
// against a pixel budget. Measurements use the Go regular typeface at the
// requested size, which keeps wrap decisions deterministic across runs and
// platforms; the browser-side tooling this pairs with measures against an
// offscreen canvas the same way.
package textmetrics

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	parseOnce  sync.Once
	parsedFont *sfnt.Font

	facesMu sync.Mutex
	faces   = make(map[float64]font.Face)
)

func faceFor(size float64) font.Face {
	if size <= 0 {
		size = 16
	}
	parseOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		parsedFont = f
	})
	if parsedFont == nil {
		return nil
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	faces[size] = face
	return face
}

// Width returns the advance width of s in pixels at the given font size.
func Width(s string, size float64) float64 {
	if s == "" {
		return 0
	}
	face := faceFor(size)
	if face == nil {
		// crude fallback so callers still get monotonic behaviour
		return float64(len([]rune(s))) * size * 0.6
	}
	return float64(font.MeasureString(face, s)) / 64
}

// Wrap greedily re-flows s against maxWidth pixels at the given size.
// Explicit newlines always break; a single word wider than the budget stays
// on its own line rather than being split mid-word. maxWidth <= 0 means no
// re-wrapping, only literal newline splitting.
func Wrap(s string, size, maxWidth float64) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, size, maxWidth)...)
	}
	return out
}

func wrapLine(line string, size, maxWidth float64) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if Width(candidate, size) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
