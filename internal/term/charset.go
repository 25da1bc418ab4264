package term

// CharsetTable maps an ASCII byte (< 0x80) to its translated rune. A
// nil table means identity (US-ASCII).
type CharsetTable map[byte]rune

// decSpecialGraphics is the DEC Special Graphics / line-drawing set
// selected by ESC ( 0 (and friends for G1-G3).
var decSpecialGraphics = CharsetTable{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

// ukNational replaces '#' with the pound sign; otherwise identical to ASCII.
var ukNational = CharsetTable{'#': '£'}

// charsetByFinal resolves an ESC ( / ) / * / + final byte to a table.
// Unrecognized finals resolve to nil (ASCII), matching spec.md's
// "semantic stub" policy for charsets this core does not model.
func charsetByFinal(final byte) CharsetTable {
	switch final {
	case '0':
		return decSpecialGraphics
	case 'A':
		return ukNational
	case 'B':
		return nil
	default:
		return nil
	}
}

// charsetState holds the four G-slots and which is active as GL/GR.
type charsetState struct {
	g       [4]CharsetTable
	gLevel  int // which of g[0..3] is GL
	grLevel int // which of g[0..3] is GR (8-bit hosts only)
	singleShift int // -1, or 2/3 for a pending SS2/SS3 single shift
}

func newCharsetState() *charsetState {
	return &charsetState{singleShift: -1}
}

// Designate sets G-slot slot (0-3) to the table selected by final.
func (c *charsetState) Designate(slot int, final byte) {
	if slot < 0 || slot > 3 {
		return
	}
	c.g[slot] = charsetByFinal(final)
}

// LockingShift sets which slot is active as GL (LS0..LS3 / SI/SO).
func (c *charsetState) LockingShift(slot int) {
	if slot >= 0 && slot <= 3 {
		c.gLevel = slot
	}
}

// LockingShiftRight sets which slot is active as GR (LS1R/LS2R/LS3R).
func (c *charsetState) LockingShiftRight(slot int) {
	if slot >= 0 && slot <= 3 {
		c.grLevel = slot
	}
}

// SingleShift arms a one-character shift to G2 or G3 (SS2/SS3).
func (c *charsetState) SingleShift(slot int) {
	c.singleShift = slot
}

// Translate maps r through the active table, consuming any pending
// single shift. Only ASCII-range (<0x80) code points are looked up,
// per spec.md §4.3.
func (c *charsetState) Translate(r rune) rune {
	slot := c.gLevel
	if c.singleShift >= 0 {
		slot = c.singleShift
		c.singleShift = -1
	}
	if r >= 0x80 {
		return r
	}
	table := c.g[slot]
	if table == nil {
		return r
	}
	if mapped, ok := table[byte(r)]; ok {
		return mapped
	}
	return r
}

// Reset restores ASCII on all slots and GL=G0 (used by RIS).
func (c *charsetState) Reset() {
	*c = charsetState{singleShift: -1}
}
