package term

import "fmt"

// mouseMode selects the wire encoding used by SendEvent/SendMotion,
// set by the DEC private mode group 9/1000/1002/1003/1005/1006/1015
// per spec.md §4.3.
type mouseMode int

const (
	mouseOff mouseMode = iota
	mouseX10           // mode 9: press-only, legacy byte encoding
	mouseNormal        // mode 1000: press+release, legacy byte encoding
	mouseButton        // mode 1002: + button-drag motion
	mouseAny           // mode 1003: + all motion
)

// mouseEncoding selects the reply byte format, independent of mouseMode.
type mouseEncoding int

const (
	encodingX10 mouseEncoding = iota
	encodingSGR               // mode 1006
	encodingURXVT             // mode 1015
)

// mouseState tracks which tracking mode and encoding are active.
type mouseState struct {
	mode     mouseMode
	encoding mouseEncoding
}

// encode renders a mouse report for buttonFlags/x/y (0-based columns)
// per the active mode, or nil if mouse reporting is off or the event
// is a release in press-only mode 9. release indicates a
// button-release event (SGR lowercases 'm'; X10/URXVT encode release
// as button code 3).
func (m mouseState) encode(buttonFlags, x, y int, release bool) []byte {
	if m.mode == mouseOff {
		return nil
	}
	if release && m.mode == mouseX10 {
		return nil
	}
	cb := buttonFlags
	if release {
		switch m.encoding {
		case encodingX10, encodingURXVT:
			cb = 3
		}
	}
	switch m.encoding {
	case encodingSGR:
		final := byte('M')
		if release {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, x+1, y+1, final))
	case encodingURXVT:
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb+32, x+1, y+1))
	default: // X10 legacy: byte-biased by 32, clamped to stay printable
		bx, by := x+1+32, y+1+32
		if bx > 255 {
			bx = 255
		}
		if by > 255 {
			by = 255
		}
		return []byte{0x1b, '[', 'M', byte(cb + 32), byte(bx), byte(by)}
	}
}

// tracksMotion reports whether the active mode reports motion events
// at all (button-drag for mouseButton, all movement for mouseAny).
func (m mouseState) tracksMotion(buttonFlags int) bool {
	switch m.mode {
	case mouseAny:
		return true
	case mouseButton:
		return buttonFlags&0x20 != 0 // drag bit per xterm's button-event encoding
	default:
		return false
	}
}

// tracksButton reports whether the active mode reports a given press/release.
func (m mouseState) tracksButton() bool {
	return m.mode != mouseOff
}
