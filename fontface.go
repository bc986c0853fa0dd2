package flatui

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceSource returns a font face for a pixel size.
type FaceSource func(size int) (font.Face, error)

// FixedFace always returns f, whatever size is asked for.
// Useful with bitmap faces such as basicfont.Face7x13.
func FixedFace(f font.Face) FaceSource {
	return func(int) (font.Face, error) { return f, nil }
}

// OpenTypeFaces parses a TrueType/OpenType font and returns a source that
// builds one hinted face per requested size.
func OpenTypeFaces(data []byte) (FaceSource, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return func(size int) (font.Face, error) {
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size: float64(size), DPI: 72, Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("new face %dpx: %w", size, err)
		}
		return face, nil
	}, nil
}

const (
	defaultAtlasSize = 1024
	atlasPadding     = 1
)

type glyphKey struct {
	size int
	r    rune
}

// atlasGlyph is a rasterized glyph's place in the atlas.
type atlasGlyph struct {
	bounds image.Rectangle // Relative to the dot on the baseline
	uv     UVRect
}

type bufferKey struct {
	text    string
	size    int
	maxSize Vec2i
	wrap    bool
}

// FaceShaper is a TextShaper over golang.org/x/image font faces.
//
// Glyphs are rasterized on first use into a single alpha atlas with a shelf
// packer. When the atlas fills up it is wiped and rebuilt from the glyphs
// later frames ask for. Laid-out buffers are cached per frame.
type FaceShaper struct {
	source FaceSource
	faces  map[int]font.Face

	atlas   *image.Alpha
	version uint64
	glyphs  map[glyphKey]atlasGlyph
	shelfX  int
	shelfY  int
	shelfH  int

	buffers *FrameCache[bufferKey, *faceBuffer]
}

// NewFaceShaper creates a shaper over source with an atlas of atlasSize
// square pixels. atlasSize <= 0 selects the default.
func NewFaceShaper(source FaceSource, atlasSize int) *FaceShaper {
	if atlasSize <= 0 {
		atlasSize = defaultAtlasSize
	}
	return &FaceShaper{
		source:  source,
		faces:   make(map[int]font.Face),
		atlas:   image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs:  make(map[glyphKey]atlasGlyph),
		shelfX:  atlasPadding,
		shelfY:  atlasPadding,
		buffers: NewFrameCache[bufferKey, *faceBuffer](),
	}
}

// NewGoRegularShaper creates a FaceShaper over the Go Regular font.
func NewGoRegularShaper() (*FaceShaper, error) {
	source, err := OpenTypeFaces(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("go regular: %w", err)
	}
	return NewFaceShaper(source, 0), nil
}

// BeginFrame implements TextShaper.
func (s *FaceShaper) BeginFrame(frame uint64) {
	s.buffers.Sweep(frame)
}

// Atlas implements TextShaper.
func (s *FaceShaper) Atlas() (*image.Alpha, uint64) {
	return s.atlas, s.version
}

// Buffer implements TextShaper.
func (s *FaceShaper) Buffer(text string, fontSize int, maxSize Vec2i, wrap bool) TextBuffer {
	key := bufferKey{text: text, size: fontSize, maxSize: maxSize, wrap: wrap}
	if buf, ok := s.buffers.Get(key); ok {
		return buf
	}
	buf := s.layout(text, fontSize, maxSize.X, wrap)
	s.buffers.Put(key, buf)
	return buf
}

// face returns the face for size, falling back to the 7x13 bitmap face.
func (s *FaceShaper) face(size int) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := s.source(size)
	if err != nil {
		uiLogger.Warn("font face unavailable, using fallback", "size", size, "err", err)
		f = basicfont.Face7x13
	}
	s.faces[size] = f
	return f
}

// glyph returns r's atlas entry, rasterizing it if needed.
func (s *FaceShaper) glyph(face font.Face, size int, r rune) atlasGlyph {
	key := glyphKey{size: size, r: r}
	if g, ok := s.glyphs[key]; ok {
		return g
	}

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		dr, mask, maskp, _, ok = face.Glyph(fixed.Point26_6{}, '?')
	}
	g := atlasGlyph{bounds: dr}
	w, h := dr.Dx(), dr.Dy()
	if ok && w > 0 && h > 0 {
		pos, fits := s.allocate(w, h)
		if !fits {
			// Glyph larger than the whole atlas; draw nothing for it.
			g.bounds = image.Rectangle{}
			s.glyphs[key] = g
			return g
		}
		draw.Draw(s.atlas, image.Rect(pos.X, pos.Y, pos.X+w, pos.Y+h), mask, maskp, draw.Src)
		size := s.atlas.Bounds().Size()
		g.uv = UVRect{
			float32(pos.X) / float32(size.X),
			float32(pos.Y) / float32(size.Y),
			float32(pos.X+w) / float32(size.X),
			float32(pos.Y+h) / float32(size.Y),
		}
		s.version++
	} else {
		g.bounds = image.Rectangle{}
	}
	s.glyphs[key] = g
	return g
}

// allocate reserves a w x h cell on the shelves, wiping the atlas if full.
func (s *FaceShaper) allocate(w, h int) (image.Point, bool) {
	size := s.atlas.Bounds().Size()
	if w+2*atlasPadding > size.X || h+2*atlasPadding > size.Y {
		return image.Point{}, false
	}
	if s.shelfX+w+atlasPadding > size.X {
		s.shelfX = atlasPadding
		s.shelfY += s.shelfH + atlasPadding
		s.shelfH = 0
	}
	if s.shelfY+h+atlasPadding > size.Y {
		s.resetAtlas()
	}
	pos := image.Pt(s.shelfX, s.shelfY)
	s.shelfX += w + atlasPadding
	s.shelfH = max(s.shelfH, h)
	return pos, true
}

func (s *FaceShaper) resetAtlas() {
	uiLogger.Debug("glyph atlas full, rebuilding", "glyphs", len(s.glyphs))
	clear(s.atlas.Pix)
	clear(s.glyphs)
	s.buffers.Clear()
	s.shelfX, s.shelfY, s.shelfH = atlasPadding, atlasPadding, 0
	s.version++
}

// layout places the runes of text on lines, breaking at spaces when wrap
// is set and a line would exceed maxWidth. Words longer than a line are
// broken between runes.
func (s *FaceShaper) layout(text string, size int, maxWidth int, wrap bool) *faceBuffer {
	face := s.face(size)
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := m.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = ascent + m.Descent.Ceil()
	}

	runes := []rune(text)
	n := len(runes)
	advances := make([]int, n)
	xs := make([]int, n+1)
	lines := make([]int, n+1)
	wrapping := wrap && maxWidth > 0

	x, line := 0, 0
	lineStart, wordStart := 0, 0
	for i, r := range runes {
		if r == '\n' {
			xs[i], lines[i] = x, line
			x, line = 0, line+1
			lineStart, wordStart = i+1, i+1
			continue
		}
		adv, _ := face.GlyphAdvance(r)
		advances[i] = adv.Round()
		if i > lineStart {
			x += face.Kern(runes[i-1], r).Round()
		}
		if wrapping && x > 0 && x+advances[i] > maxWidth {
			switch {
			case r == ' ':
				// Trailing space stays on the line it ends.
				xs[i], lines[i] = x, line
				x, line = 0, line+1
				lineStart, wordStart = i+1, i+1
				continue
			case wordStart > lineStart:
				// Move the partial word down.
				line++
				x = 0
				for j := wordStart; j < i; j++ {
					xs[j], lines[j] = x, line
					x += advances[j]
				}
				lineStart = wordStart
			default:
				line++
				x = 0
				lineStart, wordStart = i, i
			}
		}
		xs[i], lines[i] = x, line
		x += advances[i]
		if r == ' ' {
			wordStart = i + 1
		}
	}
	xs[n], lines[n] = x, line

	buf := &faceBuffer{
		lineHeight: lineHeight,
		carets:     make([]Vec2i, n+1),
		caretLines: lines,
		glyphs:     make([]GlyphQuad, 0, n),
	}
	width := 0
	for i := 0; i <= n; i++ {
		buf.carets[i] = Vec2i{X: xs[i], Y: lines[i]*lineHeight + ascent}
		if i < n && runes[i] != '\n' && runes[i] != ' ' {
			width = max(width, xs[i]+advances[i])
		}
		if i == n {
			width = max(width, xs[i])
		}
	}
	buf.size = Vec2i{X: width, Y: (line + 1) * lineHeight}
	buf.lines = line + 1

	for i, r := range runes {
		if r == '\n' || r == ' ' {
			continue
		}
		g := s.glyph(face, size, r)
		if g.bounds.Empty() {
			continue
		}
		base := buf.carets[i]
		buf.glyphs = append(buf.glyphs, GlyphQuad{
			X0: float32(base.X + g.bounds.Min.X),
			Y0: float32(base.Y + g.bounds.Min.Y),
			X1: float32(base.X + g.bounds.Max.X),
			Y1: float32(base.Y + g.bounds.Max.Y),
			U0: g.uv[0], V0: g.uv[1], U1: g.uv[2], V1: g.uv[3],
		})
	}
	return buf
}

// faceBuffer is the TextBuffer produced by FaceShaper.
type faceBuffer struct {
	size       Vec2i
	lineHeight int
	lines      int
	carets     []Vec2i
	caretLines []int
	glyphs     []GlyphQuad
}

func (b *faceBuffer) Size() Vec2i { return b.size }

func (b *faceBuffer) LineHeight() int { return b.lineHeight }

func (b *faceBuffer) CaretCount() int { return len(b.carets) }

func (b *faceBuffer) Glyphs() []GlyphQuad { return b.glyphs }

func (b *faceBuffer) CaretPosition(i int) Vec2i {
	i = max(0, min(i, len(b.carets)-1))
	return b.carets[i]
}

func (b *faceBuffer) IndexAt(p Vec2i) int {
	line := 0
	if b.lineHeight > 0 {
		line = max(0, min(p.Y/b.lineHeight, b.lines-1))
	}
	best, bestDist := 0, math.MaxInt
	for i, c := range b.carets {
		if b.caretLines[i] != line {
			continue
		}
		d := c.X - p.X
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
