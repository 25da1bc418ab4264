package term

import "testing"

type capturingDelegate struct {
	NopDelegate
	sent  [][]byte
	title string
	bells int
}

func (d *capturingDelegate) Send(p []byte)             { d.sent = append(d.sent, append([]byte(nil), p...)) }
func (d *capturingDelegate) SetTerminalTitle(s string) { d.title = s }
func (d *capturingDelegate) Bell()                     { d.bells++ }

func newTestTerminal(cols, rows int) (*Terminal, *capturingDelegate) {
	d := &capturingDelegate{}
	vt := NewTerminal(d, WithCols(cols), WithRows(rows), WithoutLogging())
	return vt, d
}

func lineText(b *Buffer, y int) string {
	ln := b.VisibleLine(y)
	out := make([]rune, 0, len(ln.Cells))
	for _, c := range ln.Cells {
		if c.Width == 0 && c.Ch == 0 {
			continue
		}
		out = append(out, c.Ch)
	}
	return string(out)
}

func TestTerminalASCIIRoundTrip(t *testing.T) {
	vt, _ := newTestTerminal(20, 5)
	vt.FeedString("hello")
	buf := vt.Buffers().Active()
	got := lineText(buf, 0)
	if got[:5] != "hello" {
		t.Fatalf("line = %q", got)
	}
	if buf.CursorX() != 5 || buf.CursorY() != 0 {
		t.Fatalf("cursor = (%d,%d)", buf.CursorX(), buf.CursorY())
	}
}

func TestTerminalCursorMovementClampedToGrid(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.FeedString("\x1b[100;100H")
	buf := vt.Buffers().Active()
	if buf.CursorX() != 9 || buf.CursorY() != 4 {
		t.Fatalf("cursor = (%d,%d), want clamped to (9,4)", buf.CursorX(), buf.CursorY())
	}
}

func TestTerminalSGRResetIdempotence(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.FeedString("\x1b[1;31;42m")
	if vt.curAttr == DefaultAttr {
		t.Fatal("expected SGR to change attributes")
	}
	vt.FeedString("\x1b[0m")
	if vt.curAttr != DefaultAttr {
		t.Fatalf("SGR reset left curAttr = %v, want default", vt.curAttr)
	}
	vt.FeedString("\x1b[m") // bare SGR is also a full reset
	if vt.curAttr != DefaultAttr {
		t.Fatalf("bare SGR reset left curAttr = %v, want default", vt.curAttr)
	}
}

func TestTerminalLineWrapOnOverflow(t *testing.T) {
	vt, _ := newTestTerminal(5, 3)
	vt.FeedString("abcdef")
	buf := vt.Buffers().Active()
	if got := lineText(buf, 0); got != "abcde" {
		t.Fatalf("row0 = %q", got)
	}
	if got := lineText(buf, 1)[:1]; got != "f" {
		t.Fatalf("row1 = %q, want to start with 'f'", got)
	}
}

func TestTerminalDECAWMDisabledClampsInsteadOfWrapping(t *testing.T) {
	vt, _ := newTestTerminal(5, 3)
	vt.FeedString("\x1b[?7l") // DECRST 7: disable autowrap
	vt.FeedString("abcdef")
	buf := vt.Buffers().Active()
	if got := lineText(buf, 0); got != "abcdf" {
		t.Fatalf("row0 = %q, want last char overwritten in place", got)
	}
	if buf.CursorY() != 0 {
		t.Fatal("should not have advanced to row1 with autowrap disabled")
	}
}

func TestTerminalBellInvokesDelegate(t *testing.T) {
	vt, d := newTestTerminal(10, 5)
	vt.FeedString("\x07")
	if d.bells != 1 {
		t.Fatalf("bells = %d, want 1", d.bells)
	}
}

func TestTerminalOSCSetsTitle(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.FeedString("\x1b]2;my window\x07")
	if vt.Title() != "my window" {
		t.Fatalf("title = %q", vt.Title())
	}
}

func TestTerminalCursorPositionReport(t *testing.T) {
	vt, d := newTestTerminal(10, 5)
	vt.FeedString("\x1b[3;4H\x1b[6n")
	if len(d.sent) != 1 {
		t.Fatalf("sent %d replies, want 1", len(d.sent))
	}
	if string(d.sent[0]) != "\x1b[3;4R" {
		t.Fatalf("CPR = %q", d.sent[0])
	}
}

func TestTerminalPrimaryDeviceAttributes(t *testing.T) {
	vt, d := newTestTerminal(10, 5)
	vt.FeedString("\x1b[c")
	if len(d.sent) != 1 {
		t.Fatalf("sent %d replies, want 1", len(d.sent))
	}
	if string(d.sent[0]) != "\x1b[?1;2c" {
		t.Fatalf("DA = %q", d.sent[0])
	}
}

func TestTerminalAlternateBufferHasNoScrollback(t *testing.T) {
	vt, _ := newTestTerminal(10, 3)
	vt.FeedString("\x1b[?1049h")
	if !vt.Buffers().IsAlternate() {
		t.Fatal("expected alternate buffer active after DECSET 1049")
	}
	for i := 0; i < 10; i++ {
		vt.FeedString("\r\n")
	}
	if vt.Buffers().Active().ScrollbackLen() != 0 {
		t.Fatal("alternate buffer must not accumulate scrollback")
	}
	vt.FeedString("\x1b[?1049l")
	if vt.Buffers().IsAlternate() {
		t.Fatal("expected normal buffer restored after DECRST 1049")
	}
}

func TestTerminalInsertModeShiftsExistingCells(t *testing.T) {
	vt, _ := newTestTerminal(10, 3)
	vt.FeedString("abc")
	vt.FeedString("\x1b[1;1H") // home
	vt.FeedString("\x1b[4h")   // IRM on
	vt.FeedString("X")
	buf := vt.Buffers().Active()
	if got := lineText(buf, 0); got[:4] != "Xabc" {
		t.Fatalf("row0 = %q, want insertion to shift existing text right", got)
	}
}

func TestTerminalDECSTBMConstrainsScrolling(t *testing.T) {
	vt, _ := newTestTerminal(5, 5)
	for y := 0; y < 5; y++ {
		vt.Buffers().Active().SetCell(0, y, Cell{Ch: rune('0' + y), Width: 1})
	}
	vt.FeedString("\x1b[2;4r") // scroll region rows 2-4 (1-based)
	buf := vt.Buffers().Active()
	top, bottom := buf.ScrollRegion()
	if top != 1 || bottom != 3 {
		t.Fatalf("region = (%d,%d), want (1,3)", top, bottom)
	}
	// with origin mode off, DECSTBM homes the cursor to the screen's top-left
	if buf.CursorX() != 0 || buf.CursorY() != 0 {
		t.Fatalf("cursor = (%d,%d)", buf.CursorX(), buf.CursorY())
	}
	// A line feed at the region's bottom row scrolls only rows 1-3.
	vt.FeedString("\x1b[4H\n")
	var got []rune
	for y := 0; y < 5; y++ {
		got = append(got, buf.Cell(0, y).Ch)
	}
	if string(got) != "023 4" {
		t.Fatalf("column 0 after scroll = %q, want %q", string(got), "023 4")
	}
}

func TestTerminalDECCOLM132RestoresOriginalWidthOnReset(t *testing.T) {
	vt, _ := newTestTerminal(80, 24)
	vt.FeedString("\x1b[?3h") // DECSET 3: switch to 132 columns
	if vt.Cols() != 132 {
		t.Fatalf("cols = %d, want 132 after entering 132-column mode", vt.Cols())
	}
	vt.FeedString("\x1b[?3l") // DECRST 3: restore
	if vt.Cols() != 80 {
		t.Fatalf("cols = %d, want restored to 80", vt.Cols())
	}
}

func TestTerminalResetClearsModesAndAttributes(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.FeedString("\x1b[1m\x1b[4h\x1b]2;hi\x07")
	vt.FeedString("\x1bc") // RIS
	if vt.curAttr != DefaultAttr {
		t.Fatal("hard reset did not clear SGR state")
	}
	if vt.insertMode {
		t.Fatal("hard reset did not clear insert mode")
	}
	if vt.Title() != "" {
		t.Fatal("hard reset did not clear title")
	}
}

func TestTerminalResizeRejectsInvalidDimensions(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	if err := vt.Resize(0, 5); err != ErrInvalidSize {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
	if vt.Cols() != 10 {
		t.Fatal("rejected resize must not change the grid")
	}
}

func TestTerminalFeedAfterCloseReturnsErrClosed(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.Close()
	if err := vt.FeedString("x"); err != ErrClosed {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestTerminalCarriageReturnLineFeed(t *testing.T) {
	vt, _ := newTestTerminal(10, 5)
	vt.FeedString("ab\r\ncd")
	buf := vt.Buffers().Active()
	if got := lineText(buf, 0)[:2]; got != "ab" {
		t.Fatalf("row0 = %q", got)
	}
	if got := lineText(buf, 1)[:2]; got != "cd" {
		t.Fatalf("row1 = %q", got)
	}
}
