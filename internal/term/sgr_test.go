package term

import "testing"

func TestApplySGRBareResetsEverything(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{1, 31})
	vt.applySGR(nil)
	if vt.curAttr != DefaultAttr {
		t.Fatalf("attr = %v, want default", vt.curAttr)
	}
}

func TestApplySGRPaletteForegroundAndBackground(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{31, 42})
	fg, ok := vt.curAttr.FgIndex()
	if !ok || fg != 1 {
		t.Fatalf("fg = %d/%v, want 1/true", fg, ok)
	}
	bg, ok := vt.curAttr.BgIndex()
	if !ok || bg != 2 {
		t.Fatalf("bg = %d/%v, want 2/true", bg, ok)
	}
}

func TestApplySGRBrightForegroundAndBackground(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{91, 102})
	fg, _ := vt.curAttr.FgIndex()
	bg, _ := vt.curAttr.BgIndex()
	if fg != 9 {
		t.Fatalf("fg = %d, want 9 (bright red)", fg)
	}
	if bg != 10 {
		t.Fatalf("bg = %d, want 10 (bright green)", bg)
	}
}

func TestApplySGRExtendedPaletteColor(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{38, 5, 200})
	idx, ok := vt.curAttr.FgIndex()
	if !ok || idx != 200 {
		t.Fatalf("fg idx = %d/%v, want 200/true", idx, ok)
	}
}

func TestApplySGRExtendedDirectColor(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{38, 2, 10, 20, 30})
	if !vt.curAttr.FgIsDirect() {
		t.Fatal("expected direct-RGB foreground")
	}
	if vt.curFgRGB != (RGB{10, 20, 30}) {
		t.Fatalf("fgRGB = %v", vt.curFgRGB)
	}
}

func TestApplySGRExtendedColorTruncatedParamsIsHarmless(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{38, 2, 10}) // missing G/B components
	if vt.curAttr.FgIsDirect() {
		t.Fatal("incomplete direct-color sequence should not apply")
	}
}

func TestApplySGRFlagsCombineAcrossMultipleCalls(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.applySGR([]int{1})
	vt.applySGR([]int{4})
	if !vt.curAttr.Has(AttrBold) || !vt.curAttr.Has(AttrUnderline) {
		t.Fatal("flags from separate SGR calls should accumulate")
	}
}

func TestClampIndexAndClampByte(t *testing.T) {
	if clampIndex(-5) != 0 || clampIndex(999) != 255 {
		t.Fatal("clampIndex out-of-range handling wrong")
	}
	if clampByte(-5) != 0 || clampByte(999) != 255 {
		t.Fatal("clampByte out-of-range handling wrong")
	}
}
