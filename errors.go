package flatui

import "errors"

// Contract violations panic with an error wrapping one of these, so a
// recovering caller can test the cause with errors.Is.
var (
	// ErrFrameActive is raised when Run is entered while another frame is live.
	ErrFrameActive = errors.New("flatui: frame already active")

	// ErrUnbalancedGroup is raised on EndGroup without StartGroup, or when a
	// pass ends with groups still open.
	ErrUnbalancedGroup = errors.New("flatui: unbalanced group")

	// ErrNestedScroll is raised when a scroll area is started inside another.
	ErrNestedScroll = errors.New("flatui: nested scroll area")

	// ErrUnknownTexture is raised when a widget names an unregistered texture.
	ErrUnknownTexture = errors.New("flatui: unknown texture")

	// ErrInvalidDirection is raised when a slider is given the overlay direction.
	ErrInvalidDirection = errors.New("flatui: invalid direction")
)
