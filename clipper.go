package flatui

// ListClipper computes the visible row range of a scroll area holding rows
// of uniform pitch, so long lists can stand in spacers for off-screen rows.
// All values are pixels.
//
// Usage:
//
//	clip := NewListClipper(len(rows), pitch, viewport, offset.Y)
//	if h := clip.Above(spacing); h > 0 {
//	    ctx.Spacer(Vec2i{Y: h}, aboveID)
//	}
//	for i := clip.Start; i < clip.End; i++ {
//	    // Build row i
//	}
//	if h := clip.Below(spacing); h > 0 {
//	    ctx.Spacer(Vec2i{Y: h}, belowID)
//	}
//
// The visible range must be computed from the same offset in both passes.
type ListClipper struct {
	Start int // First visible row (inclusive)
	End   int // Last visible row (exclusive)
	Pitch int // Row height plus spacing
	Rows  int
}

// NewListClipper calculates the visible row range for a scroll offset.
func NewListClipper(rows, pitch, viewport, scrollY int) ListClipper {
	if rows <= 0 || pitch <= 0 {
		return ListClipper{Pitch: pitch, Rows: max(rows, 0)}
	}

	start := max(scrollY/pitch, 0)
	// One extra row on each side for partially visible rows.
	end := start + viewport/pitch + 2
	return ListClipper{
		Start: min(start, rows),
		End:   min(end, rows),
		Pitch: pitch,
		Rows:  rows,
	}
}

// Visible reports whether row i is in the visible range.
func (c ListClipper) Visible(i int) bool {
	return i >= c.Start && i < c.End
}

// Above returns the height of the spacer replacing the rows before Start,
// given the spacing the container puts between children. It is 0 when no
// rows are hidden above.
func (c ListClipper) Above(spacing int) int {
	if c.Start == 0 {
		return 0
	}
	return c.Start*c.Pitch - spacing
}

// Below returns the height of the spacer replacing the rows after End.
func (c ListClipper) Below(spacing int) int {
	if c.End >= c.Rows {
		return 0
	}
	return (c.Rows-c.End)*c.Pitch - spacing
}

// ContentHeight returns the height of all rows.
func (c ListClipper) ContentHeight(spacing int) int {
	if c.Rows == 0 {
		return 0
	}
	return c.Rows*c.Pitch - spacing
}

// ScrollToRow returns the scroll offset that brings row i into a viewport
// of the given height. An already visible row leaves current unchanged.
func (c ListClipper) ScrollToRow(i, current, viewport, spacing int) int {
	if i < 0 || i >= c.Rows {
		return current
	}
	top := i * c.Pitch
	bottom := top + c.Pitch - spacing
	if top < current {
		return top
	}
	if bottom > current+viewport {
		return bottom - viewport
	}
	return current
}
