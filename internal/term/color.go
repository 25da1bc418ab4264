package term

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

func toStdColor(c RGB) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Attr is the packed style attribute word for a cell: 9 bits foreground
// index, 9 bits background index, and a block of flag bits. 0 in the
// fg/bg field means "default color", not palette index 0.
type Attr uint32

const (
	fgShift = 0
	fgMask  = 0x1FF
	bgShift = 9
	bgMask  = 0x1FF
	flagShift = 18
)

// Flag bits, laid out above the fg/bg fields.
const (
	AttrBold      Attr = 1 << (flagShift + 0)
	AttrDim       Attr = 1 << (flagShift + 1)
	AttrItalic    Attr = 1 << (flagShift + 2)
	AttrUnderline Attr = 1 << (flagShift + 3)
	AttrBlink     Attr = 1 << (flagShift + 4)
	AttrInverse   Attr = 1 << (flagShift + 5)
	AttrInvisible Attr = 1 << (flagShift + 6)
	AttrStrike    Attr = 1 << (flagShift + 7)

	attrFlagsMask = AttrBold | AttrDim | AttrItalic | AttrUnderline |
		AttrBlink | AttrInverse | AttrInvisible | AttrStrike
)

// colorSlot values stored in the 9-bit fg/bg fields.
const (
	colorDefault = 0   // use the terminal's default fg/bg
	colorDirect  = 257 // fg/bg RGB carried on the Cell itself, see RGB fields
	// 1..256 encode palette index (value-1) 0..255.
)

// DefaultAttr is the zero value: default fg, default bg, no flags.
const DefaultAttr Attr = 0

// Has reports whether all bits of flags are set.
func (a Attr) Has(flags Attr) bool {
	return a&flags == flags
}

// WithFlags returns a copy of a with flags set.
func (a Attr) WithFlags(flags Attr) Attr {
	return a | (flags & attrFlagsMask)
}

// WithoutFlags returns a copy of a with flags cleared.
func (a Attr) WithoutFlags(flags Attr) Attr {
	return a &^ (flags & attrFlagsMask)
}

// FgIndex returns the palette index and whether one is set (false means default/direct).
func (a Attr) FgIndex() (idx int, ok bool) {
	return colorSlotIndex((int(a) >> fgShift) & fgMask)
}

// BgIndex returns the palette index and whether one is set.
func (a Attr) BgIndex() (idx int, ok bool) {
	return colorSlotIndex((int(a) >> bgShift) & bgMask)
}

func colorSlotIndex(slot int) (int, bool) {
	if slot >= 1 && slot <= 256 {
		return slot - 1, true
	}
	return 0, false
}

// WithFgIndex returns a copy of a with the foreground set to a palette index.
func (a Attr) WithFgIndex(idx int) Attr {
	return setSlot(a, fgShift, fgMask, idx+1)
}

// WithBgIndex returns a copy of a with the background set to a palette index.
func (a Attr) WithBgIndex(idx int) Attr {
	return setSlot(a, bgShift, bgMask, idx+1)
}

// WithFgDefault returns a copy of a with the foreground reset to default.
func (a Attr) WithFgDefault() Attr { return setSlot(a, fgShift, fgMask, colorDefault) }

// WithBgDefault returns a copy of a with the background reset to default.
func (a Attr) WithBgDefault() Attr { return setSlot(a, bgShift, bgMask, colorDefault) }

// WithFgDirect marks the foreground as "use the Cell's direct RGB field".
func (a Attr) WithFgDirect() Attr { return setSlot(a, fgShift, fgMask, colorDirect) }

// WithBgDirect marks the background as "use the Cell's direct RGB field".
func (a Attr) WithBgDirect() Attr { return setSlot(a, bgShift, bgMask, colorDirect) }

// FgIsDirect reports whether the foreground is stored as direct RGB.
func (a Attr) FgIsDirect() bool { return (int(a)>>fgShift)&fgMask == colorDirect }

// BgIsDirect reports whether the background is stored as direct RGB.
func (a Attr) BgIsDirect() bool { return (int(a)>>bgShift)&bgMask == colorDirect }

func setSlot(a Attr, shift, mask, value int) Attr {
	cleared := uint32(a) &^ (uint32(mask) << shift)
	return Attr(cleared | (uint32(value&mask) << shift))
}

// RGB is a direct 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Palette256 is the standard xterm 256-color palette: 16 ANSI colors,
// a 6x6x6 color cube, and a 24-step grayscale ramp.
var Palette256 = buildPalette256()

func buildPalette256() [256]RGB {
	var p [256]RGB
	ansi := [16]RGB{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	copy(p[:16], ansi[:])
	for i := 0; i < 216; i++ {
		r := (i / 36) % 6
		g := (i / 6) % 6
		b := i % 6
		step := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		p[16+i] = RGB{step(r), step(g), step(b)}
	}
	for i := 0; i < 24; i++ {
		gray := uint8(8 + i*10)
		p[232+i] = RGB{gray, gray, gray}
	}
	return p
}

// NearestPaletteIndex resolves open question (a) in spec.md: SGR
// 38/48;2;R;G;B truecolor is matched down to the nearest entry of
// Palette256 using CIE Lab distance via go-colorful, rather than naive
// Euclidean RGB distance, so perceptually close hues win ties.
func NearestPaletteIndex(c RGB) int {
	target, _ := colorful.MakeColor(toStdColor(c))
	best, bestDist := 0, 1e18
	for i, p := range Palette256 {
		cand, _ := colorful.MakeColor(toStdColor(p))
		if d := target.DistanceLab(cand); d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}
