package term

import "fmt"

// registerCSIHandlers wires every CSI final byte named in spec.md
// §4.3. Private-mode sequences are distinguished by the collect
// string ("?" prefix for DECSET/DECRST/DSR, ">" for secondary DA).
func (t *Terminal) registerCSIHandlers() {
	p := t.parser

	p.OnCSI('A', func(params []int, _ string, _ byte) { t.bufs.Active().MoveRelative(0, -param(params, 0, 1)) })
	p.OnCSI('B', func(params []int, _ string, _ byte) { t.bufs.Active().MoveRelative(0, param(params, 0, 1)) })
	p.OnCSI('C', func(params []int, _ string, _ byte) { t.bufs.Active().MoveRelative(param(params, 0, 1), 0) })
	p.OnCSI('D', func(params []int, _ string, _ byte) { t.bufs.Active().MoveRelative(-param(params, 0, 1), 0) })
	p.OnCSI('E', func(params []int, _ string, _ byte) { t.cursorNextLine(param(params, 0, 1)) })
	p.OnCSI('F', func(params []int, _ string, _ byte) { t.cursorPrevLine(param(params, 0, 1)) })
	p.OnCSI('G', func(params []int, _ string, _ byte) { t.cha(param(params, 0, 1)) })
	p.OnCSI('`', func(params []int, _ string, _ byte) { t.cha(param(params, 0, 1)) }) // HPA

	p.OnCSI('H', func(params []int, _ string, _ byte) { t.cup(params) })
	p.OnCSI('f', func(params []int, _ string, _ byte) { t.cup(params) }) // HVP

	p.OnCSI('I', func(params []int, _ string, _ byte) { t.cht(param(params, 0, 1)) })
	p.OnCSI('Z', func(params []int, _ string, _ byte) { t.cbt(param(params, 0, 1)) })

	p.OnCSI('J', func(params []int, _ string, _ byte) { t.bufs.Active().EraseInDisplay(param(params, 0, 0), t.curAttr) })
	p.OnCSI('K', func(params []int, _ string, _ byte) { t.bufs.Active().EraseInLine(param(params, 0, 0), t.curAttr) })
	p.OnCSI('X', func(params []int, _ string, _ byte) { t.bufs.Active().EraseCells(param(params, 0, 1), t.curAttr) })

	p.OnCSI('L', func(params []int, _ string, _ byte) { t.bufs.Active().InsertLines(param(params, 0, 1), t.curAttr) })
	p.OnCSI('M', func(params []int, _ string, _ byte) { t.bufs.Active().DeleteLines(param(params, 0, 1), t.curAttr) })
	p.OnCSI('S', func(params []int, _ string, _ byte) { t.scrollUp(param(params, 0, 1)) })
	p.OnCSI('T', func(params []int, _ string, _ byte) { t.scrollDown(param(params, 0, 1)) })

	p.OnCSI('@', func(params []int, _ string, _ byte) { t.bufs.Active().InsertCells(param(params, 0, 1), t.curAttr) })
	p.OnCSI('P', func(params []int, _ string, _ byte) { t.bufs.Active().DeleteCells(param(params, 0, 1), t.curAttr) })

	p.OnCSI('m', func(params []int, _ string, _ byte) { t.applySGR(params) })

	p.OnCSI('h', func(params []int, collect string, _ byte) { t.setModes(params, collect, true) })
	p.OnCSI('l', func(params []int, collect string, _ byte) { t.setModes(params, collect, false) })

	p.OnCSI('r', func(params []int, collect string, _ byte) { t.decstbm(params, collect) })
	p.OnCSI('s', func(params []int, collect string, _ byte) {
		if collect == "" {
			t.saveCursor()
		}
	})
	p.OnCSI('u', func(params []int, collect string, _ byte) {
		if collect == "" {
			t.restoreCursor()
		}
	})

	p.OnCSI('n', func(params []int, collect string, _ byte) { t.dsr(params, collect) })
	p.OnCSI('c', func(params []int, collect string, _ byte) { t.deviceAttributes(params, collect) })

	p.OnCSI('g', func(params []int, _ string, _ byte) { t.tbc(param(params, 0, 0)) })

	p.OnCSI('t', func(params []int, _ string, _ byte) {
		t.logf("stub", "window manipulation not implemented", "params", params)
	})

	p.OnCSIFallback(func(params []int, collect string, final byte) {
		t.logf("protocol", "unhandled CSI", "collect", collect, "final", string(final), "params", params)
	})
}

// param returns params[i] if present and non-zero, else def — CSI
// parameters default to the final-byte-specific default when omitted
// or given as 0, per spec.md §4.3.
func param(params []int, i, def int) int {
	if i < len(params) && params[i] != 0 {
		return params[i]
	}
	return def
}

// paramRaw returns params[i] verbatim (0 if omitted), for codes like
// ED/EL/DSR where 0 is itself the meaningful default.
func paramRaw(params []int, i int) int {
	if i < len(params) {
		return params[i]
	}
	return 0
}

func (t *Terminal) cursorNextLine(n int) {
	buf := t.bufs.Active()
	buf.CarriageReturn()
	for i := 0; i < n; i++ {
		t.lineFeed()
	}
}

func (t *Terminal) cursorPrevLine(n int) {
	buf := t.bufs.Active()
	buf.CarriageReturn()
	buf.MoveRelative(0, -n)
}

func (t *Terminal) cha(n int) {
	buf := t.bufs.Active()
	buf.MoveTo(n-1, buf.CursorY(), false)
}

func (t *Terminal) cup(params []int) {
	row := param(params, 0, 1)
	col := param(params, 1, 1)
	t.bufs.Active().MoveTo(col-1, row-1, t.originMode)
}

func (t *Terminal) cht(n int) {
	buf := t.bufs.Active()
	x := buf.CursorX()
	for i := 0; i < n; i++ {
		x = buf.TabStopsPtr().Next(x)
	}
	buf.MoveTo(x, buf.CursorY(), false)
}

func (t *Terminal) cbt(n int) {
	buf := t.bufs.Active()
	x := buf.CursorX()
	for i := 0; i < n; i++ {
		x = buf.TabStopsPtr().Prev(x)
	}
	buf.MoveTo(x, buf.CursorY(), false)
}

func (t *Terminal) tbc(mode int) {
	buf := t.bufs.Active()
	switch mode {
	case 0:
		buf.TabStopsPtr().Clear(buf.CursorX())
	case 3:
		buf.TabStopsPtr().ClearAll()
	}
}

func (t *Terminal) scrollUp(n int)   { t.bufs.Active().ScrollRegionUp(n, t.curAttr) }
func (t *Terminal) scrollDown(n int) { t.bufs.Active().ScrollRegionDown(n, t.curAttr) }

func (t *Terminal) decstbm(params []int, collect string) {
	if collect != "" {
		return // e.g. "?" private DECSTBM variants are not modeled
	}
	buf := t.bufs.Active()
	top := param(params, 0, 1) - 1
	bottom := paramRaw(params, 1)
	if bottom == 0 || bottom > buf.Rows() {
		bottom = buf.Rows()
	}
	buf.SetScrollRegion(top, bottom-1)
	buf.MoveTo(0, 0, t.originMode)
}

func (t *Terminal) dsr(params []int, collect string) {
	if collect == "?" {
		t.logf("stub", "extended DSR not implemented", "params", params)
		return
	}
	switch paramRaw(params, 0) {
	case 5:
		t.delegate.Send([]byte("\x1b[0n"))
	case 6:
		buf := t.bufs.Active()
		row, col := buf.CursorY()+1, buf.CursorX()+1
		if t.originMode {
			top, _ := buf.ScrollRegion()
			row -= top
		}
		t.delegate.Send([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

func (t *Terminal) deviceAttributes(params []int, collect string) {
	switch collect {
	case ">":
		t.delegate.Send([]byte(t.secondaryDA(paramRaw(params, 0))))
	default:
		t.delegate.Send([]byte(t.primaryDA()))
	}
}
