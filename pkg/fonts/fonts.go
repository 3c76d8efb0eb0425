// Package fonts holds the typefaces used by the renderers.
//
// Vector output (SVG, DOT) only names [Family] and leaves glyphs to the
// viewer. The native painter has no system fonts to fall back on, so it draws
// with Go Regular, which golang.org/x/image embeds in the binary.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the font family written into SVG text and DOT nodes.
const Family = "Arial"

// Parsed font, computed once on first access.
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font. The result is cached after
// the first call and shared between goroutines; faces built from it are not.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}
