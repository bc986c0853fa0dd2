package flatui

// Direction is the stacking direction of a group's children.
type Direction uint8

const (
	DirHorizontal Direction = iota // Children left to right
	DirVertical                    // Children top to bottom
	DirOverlay                     // Children share one footprint
)

func (d Direction) String() string {
	switch d {
	case DirHorizontal:
		return "horizontal"
	case DirVertical:
		return "vertical"
	case DirOverlay:
		return "overlay"
	}
	return "unknown"
}

// Alignment positions children on the axis the group does not stack along.
type Alignment uint8

const (
	AlignStart  Alignment = iota // Left or top
	AlignCenter                  // Centered
	AlignEnd                     // Right or bottom
)

// Aliases that read better for a given axis.
const (
	AlignLeft   = AlignStart
	AlignTop    = AlignStart
	AlignRight  = AlignEnd
	AlignBottom = AlignEnd
)

// Layout combines a direction and an alignment.
type Layout struct {
	Direction Direction
	Align     Alignment
}

// Predefined layouts.
var (
	LayoutHorizontalTop    = Layout{DirHorizontal, AlignTop}
	LayoutHorizontalCenter = Layout{DirHorizontal, AlignCenter}
	LayoutHorizontalBottom = Layout{DirHorizontal, AlignBottom}
	LayoutVerticalLeft     = Layout{DirVertical, AlignLeft}
	LayoutVerticalCenter   = Layout{DirVertical, AlignCenter}
	LayoutVerticalRight    = Layout{DirVertical, AlignRight}
	LayoutOverlayCenter    = Layout{DirOverlay, AlignCenter}
)

// Extend folds a child extent into a group extent.
// Spacing is added only once the group already has extent on the stacking axis.
func Extend(cur, child Vec2i, dir Direction, spacing int) Vec2i {
	switch dir {
	case DirHorizontal:
		gap := 0
		if cur.X != 0 {
			gap = spacing
		}
		return Vec2i{X: cur.X + child.X + gap, Y: max(cur.Y, child.Y)}
	case DirVertical:
		gap := 0
		if cur.Y != 0 {
			gap = spacing
		}
		return Vec2i{X: max(cur.X, child.X), Y: cur.Y + child.Y + gap}
	default:
		return cur.Max(child)
	}
}

// AlignOffset returns the offset within slack for an alignment.
func AlignOffset(a Alignment, slack int) int {
	switch a {
	case AlignCenter:
		return slack / 2
	case AlignEnd:
		return slack
	}
	return 0
}

// group is the transient accumulator of one container.
// The stack holds values, so pushing snapshots the parent.
type group struct {
	direction  Direction
	align      Alignment
	spacing    int
	size       Vec2i
	position   Vec2i
	margin     pixelMargin
	elementIdx int // ledger index of the element representing this group, -1 for the root
}

func newGroup(dir Direction, align Alignment, spacing int, elementIdx int) group {
	return group{
		direction:  dir,
		align:      align,
		spacing:    spacing,
		elementIdx: elementIdx,
	}
}

// extend grows the group by a child's size (measuring).
func (g *group) extend(size Vec2i) {
	g.size = Extend(g.size, size, g.direction, g.spacing)
}

// advance moves the write cursor past a child (placing).
func (g *group) advance(size Vec2i) {
	switch g.direction {
	case DirHorizontal:
		g.position.X += size.X + g.spacing
	case DirVertical:
		g.position.Y += size.Y + g.spacing
	}
}

// childPosition resolves where a child of the given size goes (placing).
func (g *group) childPosition(size Vec2i) Vec2i {
	pos := g.position.Add(g.margin.leftTop)
	space := g.size.Sub(size).Sub(g.margin.total())
	switch g.direction {
	case DirHorizontal:
		pos.Y += AlignOffset(g.align, space.Y)
	case DirVertical:
		pos.X += AlignOffset(g.align, space.X)
	case DirOverlay:
		pos.X += AlignOffset(g.align, space.X)
		pos.Y += AlignOffset(g.align, space.Y)
	}
	return pos
}
