package term

// Buffer is one screen's worth of state: a RingOfLines plus cursor,
// scroll region, saved cursor, and tab stops, per spec.md §3.
type Buffer struct {
	ring *RingOfLines

	cols, rows int

	// Cursor position, 0-based; y addresses the visible area.
	x, y int

	// yBase is the index of the first visible line inside the ring;
	// yDisp is the first line currently displayed, which may lag yBase
	// while the user has scrolled back.
	yBase, yDisp int

	scrollTop, scrollBottom int

	savedX, savedY int
	savedAttr      Attr
	hasSaved       bool

	tabStops *TabStops

	hasScrollback bool

	dirtyValid bool
	dirtyStart int
	dirtyEnd   int
}

// NewBuffer allocates a buffer of cols x rows. scrollback is the
// number of extra retained lines; pass 0 for the alternate buffer.
func NewBuffer(cols, rows, scrollback int) *Buffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	capacity := rows + scrollback
	b := &Buffer{
		cols:         cols,
		rows:         rows,
		ring:         NewRingOfLines(capacity),
		scrollBottom: rows - 1,
		tabStops:     NewTabStops(cols),
		hasScrollback: scrollback > 0,
	}
	for i := 0; i < rows; i++ {
		b.ring.PushBlank(cols, BlankCell(DefaultAttr))
	}
	b.yBase = 0
	b.yDisp = 0
	return b
}

// Cols returns the column count.
func (b *Buffer) Cols() int { return b.cols }

// Rows returns the row count.
func (b *Buffer) Rows() int { return b.rows }

// CursorX returns the cursor column.
func (b *Buffer) CursorX() int { return b.x }

// CursorY returns the cursor row, in viewport coordinates.
func (b *Buffer) CursorY() int { return b.y }

// ScrollRegion returns the current DECSTBM bounds, inclusive.
func (b *Buffer) ScrollRegion() (top, bottom int) { return b.scrollTop, b.scrollBottom }

// SetScrollRegion sets the DECSTBM bounds, clamped to the grid.
func (b *Buffer) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= b.rows {
		bottom = b.rows - 1
	}
	if top > bottom {
		top, bottom = 0, b.rows-1
	}
	b.scrollTop, b.scrollBottom = top, bottom
}

// ResetScrollRegion restores the full-screen scroll region.
func (b *Buffer) ResetScrollRegion() {
	b.scrollTop, b.scrollBottom = 0, b.rows-1
}

// YBase returns the ring index of the first visible line.
func (b *Buffer) YBase() int { return b.yBase }

// YDisp returns the ring index of the first displayed line.
func (b *Buffer) YDisp() int { return b.yDisp }

// SetYDisp pins the displayed offset, clamped to [0, yBase], letting
// a host scroll back into retained scrollback without touching yBase
// or the cursor.
func (b *Buffer) SetYDisp(y int) {
	if y < 0 {
		y = 0
	}
	if y > b.yBase {
		y = b.yBase
	}
	b.yDisp = y
}

// ScrollbackLen returns how many lines above the viewport are retained.
func (b *Buffer) ScrollbackLen() int { return b.yBase }

// VisibleLine returns the visible-area line at viewport row y.
func (b *Buffer) VisibleLine(y int) *Line {
	return b.ring.At(b.yBase + y)
}

// HistoryLine returns a retained scrollback line (0 = oldest), or nil.
func (b *Buffer) HistoryLine(i int) *Line {
	return b.ring.At(i)
}

// Cell returns the cell at viewport (x, y), or a blank cell if out of
// bounds.
func (b *Buffer) Cell(x, y int) Cell {
	l := b.VisibleLine(y)
	if l == nil {
		return BlankCell(DefaultAttr)
	}
	return l.Get(x)
}

func (b *Buffer) markDirty(y int) {
	if !b.dirtyValid {
		b.dirtyValid, b.dirtyStart, b.dirtyEnd = true, y, y
		return
	}
	if y < b.dirtyStart {
		b.dirtyStart = y
	}
	if y > b.dirtyEnd {
		b.dirtyEnd = y
	}
}

// UpdateRange returns the dirty viewport row range and whether any
// rows are dirty.
func (b *Buffer) UpdateRange() (start, end int, ok bool) {
	return b.dirtyStart, b.dirtyEnd, b.dirtyValid
}

// ClearUpdateRange resets dirty tracking.
func (b *Buffer) ClearUpdateRange() {
	b.dirtyValid = false
}

// SetCell writes a cell at viewport (x, y) and marks the row dirty.
func (b *Buffer) SetCell(x, y int, c Cell) {
	l := b.VisibleLine(y)
	if l == nil {
		return
	}
	l.Set(x, c)
	b.markDirty(y)
}

// MoveTo sets the cursor to (x, y) in viewport coordinates, clamped,
// honoring origin mode when originMode is true (CUP/VPA relative to
// the scroll region).
func (b *Buffer) MoveTo(x, y int, originMode bool) {
	top, bottom := 0, b.rows-1
	if originMode {
		top, bottom = b.scrollTop, b.scrollBottom
		y += top
	}
	if x < 0 {
		x = 0
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	if y < top {
		y = top
	}
	if y > bottom {
		y = bottom
	}
	b.x, b.y = x, y
}

// MoveRelative moves the cursor by (dx, dy), clamped to the full grid
// (not the scroll region — used by CUU/CUD/CUF/CUB which clamp to the
// visible grid per spec.md §4.3).
func (b *Buffer) MoveRelative(dx, dy int) {
	x, y := b.x+dx, b.y+dy
	if x < 0 {
		x = 0
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	b.x, b.y = x, y
}

// CarriageReturn moves the cursor to column 0.
func (b *Buffer) CarriageReturn() { b.x = 0 }

// Scroll advances the cursor past scrollBottom, producing scrollback
// only when the region spans the whole screen (scrollTop 0 and
// scrollBottom rows-1); otherwise it shifts within [scrollTop,
// scrollBottom] and rows outside the region stay physically
// stationary, per DECSTBM. isWrapped marks the new line as a
// soft-wrap continuation when it was reached by auto-wrap.
func (b *Buffer) Scroll(isWrapped bool, attr Attr) {
	if b.scrollTop == 0 && b.scrollBottom == b.rows-1 {
		fill := BlankCell(attr)
		newLine := b.ring.PushBlank(b.cols, fill)
		newLine.IsWrapped = isWrapped
		if b.yBase+b.rows < b.ring.Len() {
			b.yBase++
		}
		if b.yDisp == b.yBase-1 || !b.hasScrollback {
			b.yDisp = b.yBase
		}
		for y := 0; y < b.rows; y++ {
			b.markDirty(y)
		}
		return
	}
	b.shiftRegionUp(1, attr)
	if l := b.VisibleLine(b.scrollBottom); l != nil {
		l.IsWrapped = isWrapped
	}
}

// ReverseIndex is the mirror of Scroll at scrollTop: lines shift down
// one and a blank appears at scrollTop. No scrollback is produced.
func (b *Buffer) ReverseIndex(attr Attr) {
	b.shiftRegionDown(1, attr)
}

func (b *Buffer) shiftRegionUp(n int, attr Attr) {
	top, bottom := b.scrollTop, b.scrollBottom
	size := bottom - top + 1
	if n > size {
		n = size
	}
	if n <= 0 {
		return
	}
	b.ring.ShiftElements(b.yBase+top, size, -n)
	fill := BlankCell(attr)
	for y := bottom - n + 1; y <= bottom; y++ {
		b.ring.Set(b.yBase+y, NewLine(b.cols, fill))
		b.markDirty(y)
	}
	for y := top; y <= bottom-n; y++ {
		b.markDirty(y)
	}
}

func (b *Buffer) shiftRegionDown(n int, attr Attr) {
	top, bottom := b.scrollTop, b.scrollBottom
	size := bottom - top + 1
	if n > size {
		n = size
	}
	if n <= 0 {
		return
	}
	b.ring.ShiftElements(b.yBase+top, size, n)
	fill := BlankCell(attr)
	for y := top; y < top+n; y++ {
		b.ring.Set(b.yBase+y, NewLine(b.cols, fill))
		b.markDirty(y)
	}
	for y := top + n; y <= bottom; y++ {
		b.markDirty(y)
	}
}

// ScrollRegionUp shifts the scroll region up n lines (SU): content
// moves toward lower row numbers, blanks appear at scrollBottom, no
// scrollback is produced regardless of scrollTop.
func (b *Buffer) ScrollRegionUp(n int, attr Attr) { b.shiftRegionUp(n, attr) }

// ScrollRegionDown shifts the scroll region down n lines (SD): the
// mirror of ScrollRegionUp, blanks appear at scrollTop.
func (b *Buffer) ScrollRegionDown(n int, attr Attr) { b.shiftRegionDown(n, attr) }

// LineFeed advances the cursor one row, scrolling the region if at
// scrollBottom.
func (b *Buffer) LineFeed(attr Attr) {
	if b.y >= b.scrollBottom {
		b.Scroll(false, attr)
	} else {
		b.y++
	}
}

// Wrap advances past an auto-wrapped line: column homes to 0 and the
// new current line is marked as a soft-wrap continuation, per spec.md
// §4.2's wrap semantics (distinct from LineFeed, which never sets
// IsWrapped).
func (b *Buffer) Wrap(attr Attr) {
	b.x = 0
	if b.y == b.scrollBottom {
		b.Scroll(true, attr)
		return
	}
	b.y++
	if l := b.VisibleLine(b.y); l != nil {
		l.IsWrapped = true
		b.markDirty(b.y)
	}
}

// InsertLines inserts n blank lines at the cursor row, pushing lines
// within [cursorY, scrollBottom] down (IL).
func (b *Buffer) InsertLines(n int, attr Attr) {
	if b.y < b.scrollTop || b.y > b.scrollBottom {
		return
	}
	oldTop := b.scrollTop
	b.scrollTop = b.y
	b.shiftRegionDown(n, attr)
	b.scrollTop = oldTop
}

// DeleteLines deletes n lines at the cursor row, pulling lines within
// [cursorY, scrollBottom] up (DL).
func (b *Buffer) DeleteLines(n int, attr Attr) {
	if b.y < b.scrollTop || b.y > b.scrollBottom {
		return
	}
	oldTop := b.scrollTop
	b.scrollTop = b.y
	b.shiftRegionUp(n, attr)
	b.scrollTop = oldTop
}

// InsertCells shifts cells at and after the cursor right by n on the
// current line (ICH).
func (b *Buffer) InsertCells(n int, attr Attr) {
	l := b.VisibleLine(b.y)
	if l == nil {
		return
	}
	l.InsertCells(b.x, n, BlankCell(attr))
	b.markDirty(b.y)
}

// DeleteCells shifts cells after the cursor left by n on the current
// line (DCH).
func (b *Buffer) DeleteCells(n int, attr Attr) {
	l := b.VisibleLine(b.y)
	if l == nil {
		return
	}
	l.DeleteCells(b.x, n, BlankCell(attr))
	b.markDirty(b.y)
}

// EraseCells overwrites n cells from the cursor with the erase cell
// (ECH) — it does not shift any cells.
func (b *Buffer) EraseCells(n int, attr Attr) {
	l := b.VisibleLine(b.y)
	if l == nil {
		return
	}
	end := b.x + n
	if end > b.cols {
		end = b.cols
	}
	l.ReplaceCells(b.x, end, BlankCell(attr))
	b.markDirty(b.y)
}

// EraseInLine implements EL 0/1/2 within the current line.
func (b *Buffer) EraseInLine(mode int, attr Attr) {
	l := b.VisibleLine(b.y)
	if l == nil {
		return
	}
	fill := BlankCell(attr)
	switch mode {
	case 0:
		l.ReplaceCells(b.x, b.cols, fill)
	case 1:
		l.ReplaceCells(0, b.x+1, fill)
		l.IsWrapped = false
	case 2:
		l.Clear(fill)
	}
	b.markDirty(b.y)
}

// EraseInDisplay implements ED 0/1/2/3. ED 3 additionally trims the
// retained scrollback.
func (b *Buffer) EraseInDisplay(mode int, attr Attr) {
	fill := BlankCell(attr)
	switch mode {
	case 0:
		b.EraseInLine(0, attr)
		for y := b.y + 1; y < b.rows; y++ {
			if l := b.VisibleLine(y); l != nil {
				l.Clear(fill)
				b.markDirty(y)
			}
		}
	case 1:
		for y := 0; y < b.y; y++ {
			if l := b.VisibleLine(y); l != nil {
				l.Clear(fill)
				b.markDirty(y)
			}
		}
		l := b.VisibleLine(b.y)
		if l != nil {
			l.ReplaceCells(0, b.x+1, fill)
			l.IsWrapped = false
			b.markDirty(b.y)
		}
	case 2, 3:
		for y := 0; y < b.rows; y++ {
			if l := b.VisibleLine(y); l != nil {
				l.Clear(fill)
				b.markDirty(y)
			}
		}
		if mode == 3 {
			b.TrimScrollback()
		}
	}
}

// TrimScrollback discards every retained scrollback line, keeping
// only the visible rows (ED 3's "erase saved lines" per spec.md §4.3).
func (b *Buffer) TrimScrollback() {
	if b.yBase == 0 {
		return
	}
	kept := make([]*Line, b.rows)
	for y := 0; y < b.rows; y++ {
		kept[y] = b.VisibleLine(y)
	}
	b.ring.Splice(0, b.ring.Len(), kept)
	b.yBase = 0
	b.yDisp = 0
}

// SaveCursor snapshots (x, y, attr) per DECSC.
func (b *Buffer) SaveCursor(attr Attr) {
	b.savedX, b.savedY, b.savedAttr, b.hasSaved = b.x, b.y, attr, true
}

// RestoreCursor restores the DECSC snapshot, returning the saved attr;
// ok is false if nothing was ever saved (restore is then a no-op).
func (b *Buffer) RestoreCursor() (attr Attr, ok bool) {
	if !b.hasSaved {
		return DefaultAttr, false
	}
	b.x, b.y = b.savedX, b.savedY
	return b.savedAttr, true
}

// Resize adjusts the buffer to newCols x newRows: lines are padded or
// truncated in place, the ring is grown or shrunk to keep exactly
// newRows visible, and tab stops reset from the old width onward.
func (b *Buffer) Resize(newCols, newRows int, attr Attr) {
	if newCols < 1 {
		newCols = 1
	}
	if newRows < 1 {
		newRows = 1
	}
	fill := BlankCell(attr)
	for i := 0; i < b.ring.Len(); i++ {
		if l := b.ring.At(i); l != nil {
			l.Resize(newCols, fill)
		}
	}
	if newRows > b.rows {
		for i := 0; i < newRows-b.rows; i++ {
			if b.yBase > 0 {
				b.yBase--
			} else {
				b.ring.PushBlank(newCols, fill)
			}
		}
	} else if newRows < b.rows {
		b.yBase += b.rows - newRows
	}
	b.cols, b.rows = newCols, newRows
	b.yDisp = b.yBase
	if b.scrollTop >= newRows {
		b.scrollTop = 0
	}
	if b.scrollBottom >= newRows || b.scrollBottom < b.scrollTop {
		b.scrollBottom = newRows - 1
	}
	b.tabStops.Reset(newCols)
	if b.x >= newCols {
		b.x = newCols - 1
	}
	if b.y >= newRows {
		b.y = newRows - 1
	}
	if b.savedX >= newCols {
		b.savedX = newCols - 1
	}
	if b.savedY >= newRows {
		b.savedY = newRows - 1
	}
	for y := 0; y < newRows; y++ {
		b.markDirty(y)
	}
}

// Reset blanks the visible rows and restores cursor, scroll region,
// saved cursor and tab stops to their initial state (used when the
// alternate buffer is entered with clear; RIS allocates fresh buffers
// instead).
func (b *Buffer) Reset() {
	fill := BlankCell(DefaultAttr)
	for y := 0; y < b.rows; y++ {
		if l := b.VisibleLine(y); l != nil {
			l.Clear(fill)
		}
	}
	b.x, b.y = 0, 0
	b.scrollTop, b.scrollBottom = 0, b.rows-1
	b.hasSaved = false
	b.tabStops.Reset(b.cols)
	for y := 0; y < b.rows; y++ {
		b.markDirty(y)
	}
}

// TabStopsPtr exposes the tab-stop bitset for the dispatcher's HT/CHT/CBT/TBC handling.
func (b *Buffer) TabStopsPtr() *TabStops { return b.tabStops }
