package flatui

// Element is the ledger record of one widget visited while measuring.
type Element struct {
	ID          ID
	Size        Vec2i // Minimum on-screen size computed while measuring
	ExtraSize   Vec2i // Content beyond the viewport of a scroll area
	Interactive bool  // Wants to respond to user input
}

// ledger is the ordered per-frame record of measured elements.
// Placing walks it with a cursor; see placeNext.
type ledger struct {
	elements []Element
	cursor   int
}

func (l *ledger) reset() {
	l.elements = l.elements[:0]
	l.cursor = 0
}

// measureAppend records a new element and returns its index.
func (l *ledger) measureAppend(size Vec2i, id ID) int {
	l.elements = append(l.elements, Element{ID: id, Size: size})
	return len(l.elements) - 1
}

// startPlacing appends the sentinel and rewinds the cursor.
func (l *ledger) startPlacing() {
	l.measureAppend(Vec2i{}, sentinelID)
	l.cursor = 0
}

// sentinel returns the index of the zero-size element used for groups that
// were not measured this frame.
func (l *ledger) sentinel() int {
	return len(l.elements) - 1
}

// placeNext returns the next element with the given id and its index.
//
// Elements skipped on the way were measured but not placed (an event handler
// earlier in the placing pass removed them). If the id is not found at all
// the element was added during placing, the cursor is restored so later
// elements can still be found, and nil is returned.
func (l *ledger) placeNext(id ID) (*Element, int) {
	backup := l.cursor
	for l.cursor < len(l.elements) {
		idx := l.cursor
		l.cursor++
		if l.elements[idx].ID == id {
			return &l.elements[idx], idx
		}
	}
	l.cursor = backup
	return nil, -1
}

// at returns the element at idx, or nil for the root group.
func (l *ledger) at(idx int) *Element {
	if idx < 0 || idx >= len(l.elements) {
		return nil
	}
	return &l.elements[idx]
}

// nextInteractive walks from start in direction dir, wrapping once, and
// returns the first interactive element's id.
func (l *ledger) nextInteractive(start, dir int) ID {
	n := len(l.elements)
	for i := start; ; {
		i += dir
		if i < 0 {
			i = n - 1
		} else if i >= n {
			i = -1
		}
		if i == start {
			return NoID
		}
		if i >= 0 && l.elements[i].Interactive {
			return l.elements[i].ID
		}
	}
}

// indexOf returns the ledger index of the first element with id, or -1.
func (l *ledger) indexOf(id ID) int {
	for i := range l.elements {
		if l.elements[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the measured elements, without the sentinel.
func (l *ledger) snapshot() []Element {
	n := len(l.elements)
	if n > 0 && l.elements[n-1].ID == sentinelID {
		n--
	}
	out := make([]Element, n)
	copy(out, l.elements[:n])
	return out
}
