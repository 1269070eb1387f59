// Package tooltip implements the shared hover overlay of a treemap.
//
// A [Controller] is a two-state machine. It starts hidden; [Controller.Enter]
// shows it with a tile's content, [Controller.Move] repositions it while
// visible, and [Controller.Leave] hides it. Only one tile can be hovered at a
// time: entering a new tile replaces the content.
//
// The controller holds no timers and no display surface, so the browser
// script emitted by the HTML sink and the terminal explorer both drive the
// same transitions.
package tooltip

import "fmt"

// DefaultOffset is the distance, in pixels or cells, between the pointer and
// the top-left corner of the tooltip on both axes.
const DefaultOffset = 10

// Format is the tooltip text template. Consumers match it byte for byte,
// including the "Categoty" spelling.
const Format = "Name: %s\nCategoty: %s\nValue: %s"

// Content is what a hovered tile shows.
type Content struct {
	ID       string // tile identifier, "tile-<i>"
	Name     string
	Category string
	Value    string // display text of the leaf value
}

// Text renders c with [Format].
func (c Content) Text() string {
	return fmt.Sprintf(Format, c.Name, c.Category, c.Value)
}

// State is a snapshot of the tooltip.
type State struct {
	Visible bool
	Content
	X, Y float64 // top-left corner, pointer position plus offset
}

// Controller owns the tooltip state. The zero value is not usable; call [New].
type Controller struct {
	offset float64
	state  State
}

// Option configures a [Controller].
type Option func(*Controller)

// WithOffset sets the pointer offset. The default is [DefaultOffset].
func WithOffset(d float64) Option {
	return func(c *Controller) { c.offset = d }
}

// New returns a hidden controller.
func New(opts ...Option) *Controller {
	c := &Controller{offset: DefaultOffset}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enter shows the tooltip for a tile hovered at pointer position (x, y).
// Content and visibility change together.
func (c *Controller) Enter(content Content, x, y float64) {
	c.state = State{
		Visible: true,
		Content: content,
		X:       x + c.offset,
		Y:       y + c.offset,
	}
}

// Move repositions a visible tooltip near (x, y). Content is unchanged.
// It is a no-op while hidden.
func (c *Controller) Move(x, y float64) {
	if !c.state.Visible {
		return
	}
	c.state.X = x + c.offset
	c.state.Y = y + c.offset
}

// Leave hides the tooltip and clears its content.
func (c *Controller) Leave() {
	c.state = State{}
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

// Visible reports whether the tooltip is shown.
func (c *Controller) Visible() bool { return c.state.Visible }

// Text returns the tooltip text, or "" while hidden.
func (c *Controller) Text() string {
	if !c.state.Visible {
		return ""
	}
	return c.state.Content.Text()
}

// DataValue returns the value the overlay exposes as an inspectable
// attribute, or "" while hidden.
func (c *Controller) DataValue() string {
	if !c.state.Visible {
		return ""
	}
	return c.state.Value
}
