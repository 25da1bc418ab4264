package term

import (
	"fmt"

	"github.com/google/uuid"
)

// Terminal is the command-dispatch layer: it wires Parser actions to
// Buffer mutations and implements the mode/SGR/charset/device-status
// semantics named in spec.md §4.3. It is single-threaded and
// synchronous: Feed runs to completion on the caller's goroutine and
// never re-enters itself, per spec.md §5.
type Terminal struct {
	id string

	cfg      Config
	parser   *Parser
	bufs     *BufferSet
	charset  *charsetState
	delegate HostDelegate

	curAttr            Attr
	curFgRGB, curBgRGB RGB
	utf8               utf8Decoder

	wraparound         bool
	originMode         bool
	insertMode         bool
	applicationCursor  bool
	applicationKeypad  bool
	bracketedPaste     bool
	cursorHidden       bool
	cursorBlink        bool
	reverseVideo       bool
	autoNewline        bool
	focusReporting     bool
	is132              bool
	savedCols          int

	mouse mouseState

	title    string
	iconName string

	closed bool

	dcsReply *dcsRequest
}

// NewTerminal constructs a Terminal with the given options and host
// delegate. A NopDelegate{} may be passed if the host does not care
// about any callback.
func NewTerminal(delegate HostDelegate, opts ...Option) *Terminal {
	cfg := NewConfig(opts...)
	if delegate == nil {
		delegate = NopDelegate{}
	}
	t := &Terminal{
		id:       uuid.New().String(),
		cfg:      cfg,
		bufs:     NewBufferSet(cfg.Cols, cfg.Rows, cfg.Scrollback),
		charset:  newCharsetState(),
		delegate: delegate,
		wraparound: true,
		mouse:      mouseState{},
		savedCols:  cfg.Cols,
	}
	t.parser = NewParser()
	t.registerHandlers()
	return t
}

// ID returns the terminal instance's UUID.
func (t *Terminal) ID() string { return t.id }

// Title returns the current window title (OSC 0/2).
func (t *Terminal) Title() string { return t.title }

// Buffers returns the underlying buffer set, for hosts that render
// directly from grid state.
func (t *Terminal) Buffers() *BufferSet { return t.bufs }

// Cols returns the active buffer's column count.
func (t *Terminal) Cols() int { return t.bufs.Active().Cols() }

// Rows returns the active buffer's row count.
func (t *Terminal) Rows() int { return t.bufs.Active().Rows() }

func (t *Terminal) logf(kind, msg string, args ...any) {
	if t.cfg.log != nil {
		t.cfg.log(kind, msg, args...)
	}
}

// Feed appends bytes to the parser, driving buffer mutations and
// delegate callbacks synchronously. It is not reentrant: delegate
// callbacks invoked from within Feed must not call Feed again.
// It returns ErrClosed once Close has been called.
func (t *Terminal) Feed(data []byte) error {
	if t.closed {
		return ErrClosed
	}
	t.parser.Feed(data)
	return nil
}

// FeedString is a convenience wrapper around Feed.
func (t *Terminal) FeedString(s string) error { return t.Feed([]byte(s)) }

// Close marks the terminal closed; further Feed calls return ErrClosed.
func (t *Terminal) Close() { t.closed = true }

// Resize applies a new grid size to both buffers and resets the
// active print cursor inside bounds. It returns ErrInvalidSize
// without changing anything if cols or rows is less than 1.
func (t *Terminal) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidSize
	}
	t.bufs.Resize(cols, rows, t.curAttr)
	if !t.is132 {
		t.savedCols = cols
	}
	t.delegate.SizeChanged()
	return nil
}

// GetUpdateRange returns the active buffer's dirty viewport row range.
func (t *Terminal) GetUpdateRange() (start, end int, ok bool) {
	return t.bufs.Active().UpdateRange()
}

// ClearUpdateRange resets the active buffer's dirty tracking.
func (t *Terminal) ClearUpdateRange() { t.bufs.Active().ClearUpdateRange() }

// SendResponse delivers host-to-terminal-and-back text as though it
// were a terminal-originated reply, e.g. for host-synthesized
// replies that must share the same out-of-band channel as DA/DSR.
func (t *Terminal) SendResponse(text string) { t.delegate.Send([]byte(text)) }

// ScrollViewport moves the displayed offset of the normal buffer's
// scrollback by delta lines (negative scrolls back into history,
// positive scrolls toward the live viewport), notifying the delegate
// when the displayed offset actually changes. Only the normal buffer
// has scrollback; calling this while the alternate buffer is active
// is a no-op.
func (t *Terminal) ScrollViewport(delta int) {
	if t.bufs.IsAlternate() {
		return
	}
	buf := t.bufs.Normal()
	before := buf.YDisp()
	buf.SetYDisp(before + delta)
	if after := buf.YDisp(); after != before {
		t.delegate.Scrolled(after)
	}
}

// SendEvent encodes and delivers a mouse button press/release per the
// active tracking mode; x/y are 0-based viewport columns/rows.
func (t *Terminal) SendEvent(buttonFlags, x, y int, release bool) {
	if !t.mouse.tracksButton() {
		return
	}
	if b := t.mouse.encode(buttonFlags, x, y, release); b != nil {
		t.delegate.Send(b)
	}
}

// SendMotion encodes and delivers a mouse-motion report, if the
// active tracking mode reports motion for the given button state.
func (t *Terminal) SendMotion(buttonFlags, x, y int) {
	if !t.mouse.tracksMotion(buttonFlags) {
		return
	}
	if b := t.mouse.encode(buttonFlags|0x20, x, y, false); b != nil {
		t.delegate.Send(b)
	}
}

// ----- handler registration -----

func (t *Terminal) registerHandlers() {
	t.parser.OnPrint(t.handlePrint)
	t.parser.OnError(func(s State) State {
		t.logf("protocol", "parser resync", "state", int(s))
		return StateGround
	})

	t.registerExecuteHandlers()
	t.registerCSIHandlers()
	t.registerEscHandlers()
	t.registerOSCHandlers()
	t.registerDCSHandlers()
}

// ----- print path -----

func (t *Terminal) handlePrint(data []byte) {
	t.utf8.Feed(data, t.printRune)
}

func (t *Terminal) printRune(r rune) {
	buf := t.bufs.Active()
	mapped := t.charset.Translate(r)
	w := RuneWidth(mapped)

	if w == 0 {
		t.foldCombining(buf)
		return
	}

	if buf.CursorX()+w > buf.Cols() {
		if t.wraparound {
			buf.Wrap(t.curAttr)
		} else {
			if w == 2 {
				return // dropped: would straddle the clamped boundary
			}
			buf.MoveTo(buf.Cols()-1, buf.CursorY(), false)
		}
	}

	if t.insertMode {
		buf.InsertCells(w, t.curAttr)
	}

	x, y := buf.CursorX(), buf.CursorY()
	cell := Cell{Ch: mapped, Width: uint8(w), Attr: t.curAttr, FgRGB: t.curFgRGB, BgRGB: t.curBgRGB}
	buf.SetCell(x, y, cell)
	if w == 2 {
		blank := cell
		blank.Width = 0
		buf.SetCell(x+1, y, blank)
	}
	// x may reach Cols() here; the next printed rune then wraps (or,
	// with autowrap off, is clamped back to the last column).
	buf.x = x + w

	if t.cfg.ScreenReaderMode && t.cfg.onScreenRead != nil {
		t.cfg.onScreenRead(mapped)
	}
}

// foldCombining folds a zero-width rune into the preceding cell. Per
// spec.md §3/§4.3 this is a v1 approximation: the combining mark is
// consumed without mutating the base cell's single scalar, and at
// column 0 (no preceding cell) it is dropped outright.
func (t *Terminal) foldCombining(buf *Buffer) {
	if buf.CursorX() == 0 {
		return
	}
	// No-op beyond consuming the mark: Cell carries one scalar in v1.
}

// ----- execute (C0/C1) handlers -----

func (t *Terminal) registerExecuteHandlers() {
	p := t.parser
	p.OnExecute(0x07, func(byte) { t.delegate.Bell() })
	p.OnExecute(0x08, func(byte) { t.bufs.Active().MoveRelative(-1, 0) })
	p.OnExecute(0x09, func(byte) { t.horizontalTab() })
	p.OnExecute(0x0A, func(byte) { t.lineFeed() })
	p.OnExecute(0x0B, func(byte) { t.lineFeed() })
	p.OnExecute(0x0C, func(byte) { t.lineFeed() })
	p.OnExecute(0x0D, func(byte) { t.bufs.Active().CarriageReturn() })
	p.OnExecute(0x0E, func(byte) { t.charset.LockingShift(1) }) // SO
	p.OnExecute(0x0F, func(byte) { t.charset.LockingShift(0) }) // SI
	p.OnExecute(0x18, func(byte) {})                            // CAN: parser already resyncs
	p.OnExecute(0x1A, func(byte) {})                            // SUB: ditto
	p.OnExecuteFallback(func(b byte) {
		t.logf("protocol", "unhandled execute byte", "byte", int(b))
	})
}

func (t *Terminal) lineFeed() {
	buf := t.bufs.Active()
	buf.LineFeed(t.curAttr)
	t.delegate.Linefeed()
	if t.cfg.ConvertEOL || t.autoNewline {
		buf.CarriageReturn()
	}
}

func (t *Terminal) horizontalTab() {
	buf := t.bufs.Active()
	next := buf.TabStopsPtr().Next(buf.CursorX())
	buf.MoveTo(next, buf.CursorY(), false)
}

// ----- ESC handlers -----

func (t *Terminal) registerEscHandlers() {
	p := t.parser
	p.OnEsc("7", func(string, byte) { t.saveCursor() })
	p.OnEsc("8", func(string, byte) { t.restoreCursor() })
	p.OnEsc("D", func(string, byte) { t.lineFeed() })    // IND
	p.OnEsc("E", func(string, byte) {                    // NEL
		t.bufs.Active().CarriageReturn()
		t.lineFeed()
	})
	p.OnEsc("H", func(string, byte) { // HTS
		buf := t.bufs.Active()
		buf.TabStopsPtr().Set(buf.CursorX())
	})
	p.OnEsc("M", func(string, byte) { t.bufs.Active().ReverseIndex(t.curAttr) }) // RI
	p.OnEsc("c", func(string, byte) { t.hardReset() })                          // RIS
	p.OnEsc("n", func(string, byte) { t.charset.LockingShift(2) })              // LS2
	p.OnEsc("o", func(string, byte) { t.charset.LockingShift(3) })              // LS3
	p.OnEsc("|", func(string, byte) { t.charset.LockingShiftRight(3) })        // LS3R
	p.OnEsc("}", func(string, byte) { t.charset.LockingShiftRight(2) })        // LS2R
	p.OnEsc("~", func(string, byte) { t.charset.LockingShiftRight(1) })        // LS1R
	p.OnEsc("N", func(string, byte) { t.charset.SingleShift(2) })               // SS2
	p.OnEsc("O", func(string, byte) { t.charset.SingleShift(3) })               // SS3
	p.OnEsc("#8", func(string, byte) { t.logf("stub", "DECALN not implemented", "err", ErrStub) })
	for _, final := range []byte{'3', '4', '5', '6'} {
		final := final
		p.OnEsc("#"+string(final), func(string, byte) {
			t.logf("stub", "double-width/height line not implemented", "err", ErrStub)
		})
	}
	p.OnEsc("%@", func(string, byte) {}) // select default charset: no-op, already UTF-8
	p.OnEsc("%G", func(string, byte) {}) // select UTF-8: no-op
	p.OnEsc("\\", func(string, byte) {}) // ST trailing a DCS/OSC/SOS/PM/APC string

	// G0-G3 charset designation: ESC ( / ) / * / + Ch, per spec.md §4.3.
	for slot, prefix := range [4]string{"(", ")", "*", "+"} {
		slot := slot
		for _, final := range []byte{'0', 'A', 'B'} {
			final := final
			p.OnEsc(prefix+string(final), func(string, byte) { t.charset.Designate(slot, final) })
		}
	}

	p.OnEscFallback(func(collect string, final byte) {
		t.logf("protocol", "unhandled esc sequence", "collect", collect, "final", string(final))
	})
}

func (t *Terminal) saveCursor() {
	t.bufs.Active().SaveCursor(t.curAttr)
}

func (t *Terminal) restoreCursor() {
	if attr, ok := t.bufs.Active().RestoreCursor(); ok {
		t.curAttr = attr
	}
}

// ----- soft/hard reset -----

func (t *Terminal) softReset() {
	t.wraparound = true
	t.originMode = false
	t.insertMode = false
	t.applicationCursor = false
	t.applicationKeypad = false
	t.bracketedPaste = false
	t.cursorHidden = false
	t.curAttr = DefaultAttr
	t.curFgRGB, t.curBgRGB = RGB{}, RGB{}
	t.mouse = mouseState{}
	t.bufs.Active().ResetScrollRegion()
	t.bufs.Active().MoveTo(0, 0, false)
}

func (t *Terminal) hardReset() {
	t.softReset()
	t.charset.Reset()
	t.bufs = NewBufferSet(t.cfg.Cols, t.cfg.Rows, t.cfg.Scrollback)
	t.is132 = false
	t.savedCols = t.cfg.Cols
	t.title = ""
	t.iconName = ""
}

// ----- device attribute / status replies -----

func (t *Terminal) primaryDA() string {
	switch t.cfg.TermName {
	case "linux":
		return "\x1b[?6c"
	default: // xterm, rxvt-unicode, screen, and anything xterm-like
		return "\x1b[?1;2c"
	}
}

func (t *Terminal) secondaryDA(requestParam int) string {
	switch t.cfg.TermName {
	case "rxvt-unicode":
		return "\x1b[>85;95;0c"
	case "screen":
		return "\x1b[>83;40003;0c"
	case "linux":
		return fmt.Sprintf("\x1b[>%d;0;0c", requestParam)
	default:
		return "\x1b[>0;276;0c"
	}
}
