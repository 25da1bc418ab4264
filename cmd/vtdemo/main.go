// Package main is the reference host for the vtcore terminal engine: it
// spawns a shell under a pty and renders the engine's screen buffer to
// a real terminal using tcell.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
	xterm "golang.org/x/term"

	"github.com/dshills/vtcore/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	shell := flag.String("shell", defaultShell(), "shell to run inside the emulator")
	scrollback := flag.Int("scrollback", 1000, "scrollback line count")
	flag.Parse()

	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "vtdemo: stdin is not a terminal")
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtdemo: new screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "vtdemo: init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	cols, rows := screen.Size()

	cmd := exec.Command(*shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtdemo: start pty: %v\n", err)
		return 1
	}
	defer ptmx.Close() //nolint:errcheck // best-effort cleanup on exit

	host := &demoHost{screen: screen, ptmx: ptmx, trueColor: screen.Colors() >= 1<<24}
	vt := term.NewTerminal(host,
		term.WithCols(cols),
		term.WithRows(rows),
		term.WithScrollback(*scrollback),
		term.WithTermName("xterm-256color"),
	)
	host.vt = vt

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGWINCH)
	go func() {
		for range signals {
			w, h := screen.Size()
			_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(w), Rows: uint16(h)})
			host.mu.Lock()
			vt.Resize(w, h)
			host.mu.Unlock()
			host.draw()
		}
	}()

	go host.pumpPTY()

	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			w, h := e.Size()
			_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(w), Rows: uint16(h)})
			host.mu.Lock()
			vt.Resize(w, h)
			host.mu.Unlock()
			screen.Sync()
		case *tcell.EventKey:
			if b := encodeKey(e); b != nil {
				_, _ = ptmx.Write(b)
			}
		case *tcell.EventMouse:
			handleMouseEvent(vt, e)
		case *tcell.EventPaste:
			// Bracketed paste framing; actual text arrives as key events.
		case *tcell.EventInterrupt:
			return 0
		}
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// demoHost implements term.HostDelegate, bridging the engine to the
// pty (for replies) and to the tcell screen (for rendering).
type demoHost struct {
	mu        sync.Mutex
	screen    tcell.Screen
	ptmx      *os.File
	vt        *term.Terminal
	trueColor bool
}

func (h *demoHost) pumpPTY() {
	buf := make([]byte, 4096)
	for {
		n, err := h.ptmx.Read(buf)
		if n > 0 {
			h.vt.Feed(buf[:n])
			h.draw()
		}
		if err != nil {
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return
		}
	}
}

func (h *demoHost) Send(p []byte) {
	_, _ = h.ptmx.Write(p)
}

func (h *demoHost) SetTerminalTitle(title string) {
	h.screen.SetTitle(title)
}

func (h *demoHost) Bell() {
	h.screen.Beep() //nolint:errcheck // best-effort
}

func (h *demoHost) Linefeed()        {}
func (h *demoHost) ShowCursor()      {}
func (h *demoHost) Scrolled(int)     {}
func (h *demoHost) BufferActivated() {}
func (h *demoHost) SizeChanged()     {}

// draw renders the active buffer's visible rows into the tcell screen.
// It is called from the pty read goroutine, so it takes the host lock
// to serialize with the resize handler.
func (h *demoHost) draw() {
	h.mu.Lock()
	defer h.mu.Unlock()

	cols, rows := h.vt.Cols(), h.vt.Rows()
	buf := h.vt.Buffers().Active()
	for y := 0; y < rows; y++ {
		line := buf.VisibleLine(y)
		if line == nil {
			continue
		}
		for x := 0; x < cols && x < len(line.Cells); x++ {
			cell := line.Cells[x]
			if !h.trueColor {
				cell = cell.PaletteFallback()
			}
			h.screen.SetContent(x, y, cellRune(cell), nil, cellStyle(cell))
		}
	}
	h.screen.ShowCursor(buf.CursorX(), buf.CursorY())
	h.screen.Show()
}

func cellRune(c term.Cell) rune {
	if c.Ch == 0 {
		return ' '
	}
	return c.Ch
}

func cellStyle(c term.Cell) tcell.Style {
	style := tcell.StyleDefault

	if c.Attr.FgIsDirect() {
		style = style.Foreground(tcell.NewRGBColor(int32(c.FgRGB.R), int32(c.FgRGB.G), int32(c.FgRGB.B)))
	} else if idx, ok := c.Attr.FgIndex(); ok {
		style = style.Foreground(tcell.PaletteColor(idx))
	}

	if c.Attr.BgIsDirect() {
		style = style.Background(tcell.NewRGBColor(int32(c.BgRGB.R), int32(c.BgRGB.G), int32(c.BgRGB.B)))
	} else if idx, ok := c.Attr.BgIndex(); ok {
		style = style.Background(tcell.PaletteColor(idx))
	}

	if c.Attr.Has(term.AttrBold) {
		style = style.Bold(true)
	}
	if c.Attr.Has(term.AttrDim) {
		style = style.Dim(true)
	}
	if c.Attr.Has(term.AttrItalic) {
		style = style.Italic(true)
	}
	if c.Attr.Has(term.AttrUnderline) {
		style = style.Underline(true)
	}
	if c.Attr.Has(term.AttrBlink) {
		style = style.Blink(true)
	}
	if c.Attr.Has(term.AttrInverse) {
		style = style.Reverse(true)
	}
	if c.Attr.Has(term.AttrStrike) {
		style = style.StrikeThrough(true)
	}

	return style
}

// encodeKey maps a tcell key event to the bytes a real terminal would
// send upstream; arrow/function keys use the ANSI cursor-key forms.
func encodeKey(e *tcell.EventKey) []byte {
	switch e.Key() {
	case tcell.KeyRune:
		return []byte(string(e.Rune()))
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7F}
	case tcell.KeyEscape:
		return []byte{0x1B}
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyEnd:
		return []byte("\x1b[F")
	case tcell.KeyPgUp:
		return []byte("\x1b[5~")
	case tcell.KeyPgDn:
		return []byte("\x1b[6~")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	case tcell.KeyCtrlC:
		return []byte{0x03}
	case tcell.KeyCtrlD:
		return []byte{0x04}
	default:
		return nil
	}
}

func handleMouseEvent(vt *term.Terminal, e *tcell.EventMouse) {
	x, y := e.Position()
	buttons := e.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		vt.SendEvent(0, x, y, false)
	case buttons&tcell.WheelUp != 0:
		vt.SendEvent(64, x, y, false)
	case buttons&tcell.WheelDown != 0:
		vt.SendEvent(65, x, y, false)
	case buttons == tcell.ButtonNone:
		vt.SendEvent(0, x, y, true)
	default:
		vt.SendMotion(32, x, y)
	}
}
