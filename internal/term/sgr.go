package term

// applySGR scans params left to right and updates curAttr per
// spec.md §4.3's SGR table. Unknown codes are logged and ignored.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		t.curAttr = DefaultAttr
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			t.curAttr = DefaultAttr
		case p == 1:
			t.curAttr = t.curAttr.WithFlags(AttrBold)
		case p == 2:
			t.curAttr = t.curAttr.WithFlags(AttrDim)
		case p == 3:
			t.curAttr = t.curAttr.WithFlags(AttrItalic)
		case p == 4:
			t.curAttr = t.curAttr.WithFlags(AttrUnderline)
		case p == 5:
			t.curAttr = t.curAttr.WithFlags(AttrBlink)
		case p == 7:
			t.curAttr = t.curAttr.WithFlags(AttrInverse)
		case p == 8:
			t.curAttr = t.curAttr.WithFlags(AttrInvisible)
		case p == 9:
			t.curAttr = t.curAttr.WithFlags(AttrStrike)
		case p == 22:
			t.curAttr = t.curAttr.WithoutFlags(AttrBold | AttrDim)
		case p == 23:
			t.curAttr = t.curAttr.WithoutFlags(AttrItalic)
		case p == 24:
			t.curAttr = t.curAttr.WithoutFlags(AttrUnderline)
		case p == 25:
			t.curAttr = t.curAttr.WithoutFlags(AttrBlink)
		case p == 27:
			t.curAttr = t.curAttr.WithoutFlags(AttrInverse)
		case p == 28:
			t.curAttr = t.curAttr.WithoutFlags(AttrInvisible)
		case p == 29:
			t.curAttr = t.curAttr.WithoutFlags(AttrStrike)
		case p >= 30 && p <= 37:
			t.curAttr = t.curAttr.WithFgIndex(p - 30)
		case p == 38:
			i = t.applyExtendedColor(params, i, true)
		case p == 39:
			t.curAttr = t.curAttr.WithFgDefault()
		case p >= 40 && p <= 47:
			t.curAttr = t.curAttr.WithBgIndex(p - 40)
		case p == 48:
			i = t.applyExtendedColor(params, i, false)
		case p == 49:
			t.curAttr = t.curAttr.WithBgDefault()
		case p >= 90 && p <= 97:
			t.curAttr = t.curAttr.WithFgIndex(p - 90 + 8)
		case p >= 100 && p <= 107:
			t.curAttr = t.curAttr.WithBgIndex(p - 100 + 8)
		default:
			t.logf("protocol", "unknown SGR code", "code", p)
		}
	}
}

// applyExtendedColor handles 38/48;5;N (palette) and 38/48;2;R;G;B
// (direct RGB) forms, returning the new scan index.
func (t *Terminal) applyExtendedColor(params []int, i int, fg bool) int {
	if i+1 >= len(params) {
		return i
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return i + 1
		}
		idx := clampIndex(params[i+2])
		if fg {
			t.curAttr = t.curAttr.WithFgIndex(idx)
		} else {
			t.curAttr = t.curAttr.WithBgIndex(idx)
		}
		return i + 2
	case 2:
		if i+4 >= len(params) {
			return i + 1
		}
		rgb := RGB{clampByte(params[i+2]), clampByte(params[i+3]), clampByte(params[i+4])}
		if fg {
			t.curAttr = t.curAttr.WithFgDirect()
			t.curFgRGB = rgb
		} else {
			t.curAttr = t.curAttr.WithBgDirect()
			t.curBgRGB = rgb
		}
		return i + 4
	default:
		return i + 1
	}
}

func clampIndex(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
