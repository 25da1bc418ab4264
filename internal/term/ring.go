package term

// RingOfLines is a fixed-capacity circular sequence of lines behaving
// as a FIFO once full. capacity is rows+scrollback for the normal
// buffer or rows for the alternate buffer, per spec.md §3.
type RingOfLines struct {
	lines []*Line // physical storage, length == capacity
	head  int     // physical index of logical line 0
	count int     // number of logical lines currently held, <= capacity
	free  *Line   // most recently evicted line, offered back to recycle
}

// NewRingOfLines preallocates a ring of the given capacity.
func NewRingOfLines(capacity int) *RingOfLines {
	if capacity < 1 {
		capacity = 1
	}
	return &RingOfLines{lines: make([]*Line, capacity)}
}

// Cap returns the ring's fixed capacity.
func (r *RingOfLines) Cap() int { return len(r.lines) }

// Len returns the number of logical lines currently held.
func (r *RingOfLines) Len() int { return r.count }

func (r *RingOfLines) physical(i int) int {
	return (r.head + i) % len(r.lines)
}

// At returns the logical line at index i (0 is oldest), or nil if out
// of range.
func (r *RingOfLines) At(i int) *Line {
	if i < 0 || i >= r.count {
		return nil
	}
	return r.lines[r.physical(i)]
}

// Set overwrites the logical line at index i.
func (r *RingOfLines) Set(i int, l *Line) {
	if i < 0 || i >= r.count {
		return
	}
	r.lines[r.physical(i)] = l
}

// Push appends l as the newest line. If the ring is full, the oldest
// line is evicted (dropped from the logical sequence) and returned so
// the caller can recycle its cell storage; otherwise Push returns nil
// and count grows by one.
func (r *RingOfLines) Push(l *Line) (evicted *Line) {
	if r.count < len(r.lines) {
		r.lines[r.physical(r.count)] = l
		r.count++
		return nil
	}
	evicted = r.lines[r.head]
	r.lines[r.head] = l
	r.head = (r.head + 1) % len(r.lines)
	return evicted
}

// Recycle reuses the last line evicted by PushBlank (if any), resizing and
// clearing it in place to avoid allocation, per spec.md's "recycle the
// about-to-be-evicted slot" memory discipline. It returns a freshly
// usable blank line, allocating only when nothing was available to
// reuse.
func (r *RingOfLines) Recycle(cols int, fill Cell) *Line {
	if r.free != nil {
		l := r.free
		r.free = nil
		l.Resize(cols, fill)
		l.Clear(fill)
		return l
	}
	return NewLine(cols, fill)
}

// PushBlank allocates (or recycles) a blank line of width cols and
// pushes it as the newest line, offering any evicted line to the next
// Recycle call.
func (r *RingOfLines) PushBlank(cols int, fill Cell) *Line {
	l := r.Recycle(cols, fill)
	if evicted := r.Push(l); evicted != nil {
		r.free = evicted
	}
	return l
}

// ShiftElements shifts the sub-range [start, start+count) by offset
// logical positions (positive moves toward higher indices), used by
// in-region scroll and insert/delete-line operations that must not
// touch lines outside the given range.
func (r *RingOfLines) ShiftElements(start, count, offset int) {
	if count <= 0 || offset == 0 {
		return
	}
	idx := make([]*Line, count)
	for i := 0; i < count; i++ {
		idx[i] = r.At(start + i)
	}
	for i := 0; i < count; i++ {
		dst := start + i + offset
		if dst < start || dst >= start+count {
			continue
		}
		r.Set(dst, idx[i])
	}
}

// Splice removes deleteCount logical lines starting at start and
// inserts items in their place, rotating the remainder in place. Used
// by Buffer.TrimScrollback to drop retained history without
// reallocating the whole ring.
func (r *RingOfLines) Splice(start, deleteCount int, items []*Line) {
	if start < 0 {
		start = 0
	}
	if start > r.count {
		start = r.count
	}
	if deleteCount > r.count-start {
		deleteCount = r.count - start
	}
	tail := make([]*Line, 0, r.count-start-deleteCount)
	for i := start + deleteCount; i < r.count; i++ {
		tail = append(tail, r.At(i))
	}
	r.count = start
	for _, l := range items {
		r.appendLogical(l)
	}
	for _, l := range tail {
		r.appendLogical(l)
	}
}

// appendLogical appends a line directly without evicting, growing
// count up to capacity; beyond capacity it evicts from the head like
// Push, keeping Splice's total bounded by the ring's fixed capacity.
func (r *RingOfLines) appendLogical(l *Line) {
	if r.count < len(r.lines) {
		r.lines[r.physical(r.count)] = l
		r.count++
		return
	}
	r.lines[r.head] = l
	r.head = (r.head + 1) % len(r.lines)
}
