package term

// Cell is an atomic grid element: a character, its display width, the
// packed style attribute word, and (rarely) a direct RGB override for
// fg/bg when Attr.FgIsDirect/BgIsDirect is set.
type Cell struct {
	Ch    rune
	Width uint8 // 0 (combining, folded into previous cell), 1, or 2
	Attr  Attr
	FgRGB RGB
	BgRGB RGB
}

// BlankCell returns a cell carrying the space character with attr.
// Per spec.md §4.3, ECH/erase cells carry the current background but
// default foreground.
func BlankCell(attr Attr) Cell {
	return Cell{Ch: ' ', Width: 1, Attr: attr.WithFgDefault()}
}

// IsBlank reports whether the cell is an unstyled space, such as a
// cell that has never been written.
func (c Cell) IsBlank() bool {
	return c.Ch == ' ' && c.Attr == DefaultAttr.WithFgDefault()
}

// PaletteFallback returns a copy of c with any direct-RGB fg/bg
// resolved to the nearest Palette256 index, for hosts that report no
// true-color support.
func (c Cell) PaletteFallback() Cell {
	out := c
	if c.Attr.FgIsDirect() {
		out.Attr = out.Attr.WithFgIndex(NearestPaletteIndex(c.FgRGB))
	}
	if c.Attr.BgIsDirect() {
		out.Attr = out.Attr.WithBgIndex(NearestPaletteIndex(c.BgRGB))
	}
	return out
}
