package term

import "testing"

func TestAttrFgIndexRoundTrip(t *testing.T) {
	a := DefaultAttr.WithFgIndex(42)
	idx, ok := a.FgIndex()
	if !ok || idx != 42 {
		t.Fatalf("idx=%d ok=%v, want 42/true", idx, ok)
	}
}

func TestAttrFgDefaultIsNotAnIndex(t *testing.T) {
	a := DefaultAttr.WithFgIndex(5).WithFgDefault()
	if _, ok := a.FgIndex(); ok {
		t.Fatal("default foreground should not report an index")
	}
}

func TestAttrDirectColorIsNotAnIndex(t *testing.T) {
	a := DefaultAttr.WithFgDirect()
	if _, ok := a.FgIndex(); ok {
		t.Fatal("direct-RGB foreground should not report a palette index")
	}
	if !a.FgIsDirect() {
		t.Fatal("FgIsDirect should be true")
	}
}

func TestAttrFlagsIndependentOfColor(t *testing.T) {
	a := DefaultAttr.WithFgIndex(1).WithBgIndex(2).WithFlags(AttrBold | AttrUnderline)
	if !a.Has(AttrBold) || !a.Has(AttrUnderline) {
		t.Fatal("flags lost")
	}
	idx, ok := a.FgIndex()
	if !ok || idx != 1 {
		t.Fatalf("fg idx = %d/%v, want 1/true", idx, ok)
	}
	a = a.WithoutFlags(AttrBold)
	if a.Has(AttrBold) {
		t.Fatal("bold should have been cleared")
	}
	if !a.Has(AttrUnderline) {
		t.Fatal("underline should survive clearing bold")
	}
}

func TestSGRResetIsIdempotent(t *testing.T) {
	base := DefaultAttr
	styled := base.WithFlags(AttrBold).WithFgIndex(3).WithBgIndex(4)
	reset1 := styled.WithoutFlags(AttrBold).WithFgDefault().WithBgDefault()
	reset2 := reset1.WithoutFlags(AttrBold).WithFgDefault().WithBgDefault()
	if reset1 != reset2 {
		t.Fatalf("reset not idempotent: %v != %v", reset1, reset2)
	}
	if reset1 != base {
		t.Fatalf("reset attr %v != zero-value DefaultAttr %v", reset1, base)
	}
}

func TestNearestPaletteIndexExactMatch(t *testing.T) {
	// Cube entries 16 (0,0,0) and 231 (255,255,255) duplicate ANSI
	// colors 0 and 15; an exact tie resolves to the lowest index.
	cases := []struct{ in, want int }{{0, 0}, {15, 15}, {16, 0}, {231, 15}, {255, 255}}
	for _, c := range cases {
		got := NearestPaletteIndex(Palette256[c.in])
		if got != c.want {
			t.Fatalf("exact palette color %d resolved to %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCellPaletteFallbackResolvesDirectColors(t *testing.T) {
	c := Cell{Ch: 'x', Width: 1, Attr: DefaultAttr.WithFgDirect().WithBgDirect(), FgRGB: RGB{0, 0, 0}, BgRGB: RGB{255, 255, 255}}
	out := c.PaletteFallback()
	if out.Attr.FgIsDirect() || out.Attr.BgIsDirect() {
		t.Fatal("PaletteFallback should resolve direct colors to palette indices")
	}
	fg, ok := out.Attr.FgIndex()
	if !ok || fg != 0 {
		t.Fatalf("fg = %d/%v, want palette black (0)", fg, ok)
	}
	bg, ok := out.Attr.BgIndex()
	if !ok || bg != 15 {
		t.Fatalf("bg = %d/%v, want palette white (15)", bg, ok)
	}
}

func TestCellPaletteFallbackLeavesNonDirectCellsUnchanged(t *testing.T) {
	c := Cell{Ch: 'x', Width: 1, Attr: DefaultAttr.WithFgIndex(3)}
	out := c.PaletteFallback()
	if out != c {
		t.Fatalf("got %+v, want unchanged %+v", out, c)
	}
}

func TestNearestPaletteIndexBlackWhite(t *testing.T) {
	if got := NearestPaletteIndex(RGB{0, 0, 0}); got != 0 {
		t.Fatalf("pure black -> %d, want 0", got)
	}
	if got := NearestPaletteIndex(RGB{255, 255, 255}); got != 15 {
		t.Fatalf("pure white -> %d, want 15", got)
	}
}
