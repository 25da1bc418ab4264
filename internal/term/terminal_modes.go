package term

// setModes applies SM/RM (ANSI, collect == "") or DECSET/DECRST
// (collect == "?") for every parameter independently, per spec.md
// §4.3's mode table.
func (t *Terminal) setModes(params []int, collect string, set bool) {
	if collect == "?" {
		for _, m := range params {
			t.setPrivateMode(m, set)
		}
		return
	}
	for _, m := range params {
		t.setANSIMode(m, set)
	}
}

func (t *Terminal) setANSIMode(mode int, set bool) {
	switch mode {
	case 4:
		t.insertMode = set
	case 20:
		t.autoNewline = set
	default:
		t.logf("protocol", "unknown ANSI mode", "mode", mode)
	}
}

func (t *Terminal) setPrivateMode(mode int, set bool) {
	switch mode {
	case 1:
		t.applicationCursor = set
	case 3:
		t.toggle132(set)
	case 5:
		t.reverseVideo = set
	case 6:
		t.originMode = set
		t.bufs.Active().MoveTo(0, 0, t.originMode)
	case 7:
		t.wraparound = set
	case 9:
		t.setMouseMode(mouseX10, set)
	case 12:
		t.cursorBlink = set
	case 25:
		t.cursorHidden = !set
		if set {
			t.delegate.ShowCursor()
		}
	case 66:
		t.applicationKeypad = set
	case 1000:
		t.setMouseMode(mouseNormal, set)
	case 1002:
		t.setMouseMode(mouseButton, set)
	case 1003:
		t.setMouseMode(mouseAny, set)
	case 1004:
		t.focusReporting = set
	case 1005:
		t.logf("stub", "UTF-8 mouse coordinate mode not implemented", "err", ErrStub)
	case 1006:
		t.setMouseEncoding(encodingSGR, set)
	case 1015:
		t.setMouseEncoding(encodingURXVT, set)
	case 47:
		t.switchAltBuffer(set, false)
	case 1047:
		t.switchAltBuffer(set, false)
	case 1048:
		t.saveRestoreOn1048(set)
	case 1049:
		t.switchAltBuffer(set, true)
	case 2004:
		t.bracketedPaste = set
	default:
		t.logf("protocol", "unknown DEC private mode", "mode", mode)
	}
}

func (t *Terminal) setMouseMode(m mouseMode, set bool) {
	if set {
		t.mouse.mode = m
	} else if t.mouse.mode == m {
		t.mouse.mode = mouseOff
	}
}

func (t *Terminal) setMouseEncoding(e mouseEncoding, set bool) {
	if set {
		t.mouse.encoding = e
	} else if t.mouse.encoding == e {
		t.mouse.encoding = encodingX10
	}
}

// toggle132 implements DEC private mode 3: on set, remember the
// current column count and resize to 132; on reset, restore it.
func (t *Terminal) toggle132(set bool) {
	if set == t.is132 {
		return
	}
	buf := t.bufs.Active()
	if set {
		t.savedCols = buf.Cols()
		t.is132 = true
		t.Resize(132, buf.Rows())
	} else {
		t.is132 = false
		t.Resize(t.savedCols, buf.Rows())
	}
}

func (t *Terminal) saveRestoreOn1048(set bool) {
	if set {
		t.saveCursor()
	} else {
		t.restoreCursor()
	}
}

// switchAltBuffer implements modes 47/1047/1049: 1049 additionally
// saves/restores the cursor and clears on entry, per spec.md §4.3/§4.4.
func (t *Terminal) switchAltBuffer(enter, withCursor bool) {
	if enter {
		if withCursor {
			t.saveCursor()
		}
		t.bufs.ActivateAlternate(withCursor, t.curAttr)
	} else {
		t.bufs.ActivateNormal()
		if withCursor {
			t.restoreCursor()
		}
	}
	t.delegate.BufferActivated()
}
