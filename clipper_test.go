package flatui

import "testing"

func TestListClipperRange(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		scrollY    int
		start, end int
	}{
		{"top", 100, 0, 0, 6},
		{"middle", 100, 250, 6, 12},
		{"bottom", 100, 3960, 99, 100},
		{"short list", 3, 0, 0, 3},
		{"negative offset", 100, -50, 0, 6},
		{"empty", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 40px pitch, 160px viewport.
			c := NewListClipper(tt.rows, 40, 160, tt.scrollY)
			if c.Start != tt.start || c.End != tt.end {
				t.Errorf("range [%d, %d), want [%d, %d)", c.Start, c.End, tt.start, tt.end)
			}
		})
	}
}

func TestListClipperSpacers(t *testing.T) {
	const (
		rows    = 50
		pitch   = 36
		spacing = 4
	)
	for _, scrollY := range []int{0, 100, 900, 1760} {
		c := NewListClipper(rows, pitch, 160, scrollY)

		// Spacers and visible rows must add up to the full content, with
		// the container's spacing between each pair of children.
		total := (c.End-c.Start)*pitch - spacing
		if h := c.Above(spacing); h > 0 {
			total += h + spacing
		}
		if h := c.Below(spacing); h > 0 {
			total += h + spacing
		}
		if want := c.ContentHeight(spacing); total != want {
			t.Errorf("scroll %d: children total %d, want %d", scrollY, total, want)
		}

		if c.Visible(c.Start-1) || !c.Visible(c.Start) || c.Visible(c.End) {
			t.Errorf("scroll %d: Visible disagrees with [%d, %d)", scrollY, c.Start, c.End)
		}
	}
}

func TestListClipperScrollToRow(t *testing.T) {
	c := NewListClipper(20, 36, 160, 0)

	tests := []struct {
		name    string
		row     int
		current int
		want    int
	}{
		{"visible", 2, 0, 0},
		{"below", 10, 0, 10*36 + 32 - 160},
		{"above", 1, 200, 36},
		{"out of range", 30, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ScrollToRow(tt.row, tt.current, 160, 4); got != tt.want {
				t.Errorf("ScrollToRow(%d) = %d, want %d", tt.row, got, tt.want)
			}
		})
	}
}
