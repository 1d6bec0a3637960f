package deck

import "time"

// Face is the identity printed on the front of a card.
// Two cards match when their faces are equal.
type Face string

// Orientation is which side of a card is showing
type Orientation int

const (
	FaceDown Orientation = iota
	FaceUp
)

func (o Orientation) String() string {
	if o == FaceUp {
		return "faceUp"
	}
	return "faceDown"
}

// SelectFunc receives a card's selection report.
// It returns whether the selection was accepted.
type SelectFunc func(c *Card) bool

// Card represents one card slot on the table
type Card struct {
	id           int
	face         Face
	orientation  Orientation
	flipDuration time.Duration
	remaining    time.Duration // animation budget left, zero when idle
	onSelected   SelectFunc
}

// NewCard constructs a face-down card
func NewCard(id int, face Face, flipDuration time.Duration) *Card {
	return &Card{id: id, face: face, flipDuration: flipDuration}
}

func (c *Card) ID() int {
	return c.id
}

func (c *Card) Face() Face {
	return c.face
}

func (c *Card) Orientation() Orientation {
	return c.orientation
}

func (c *Card) FlipDuration() time.Duration {
	return c.flipDuration
}

// Animating reports whether a flip is still in progress
func (c *Card) Animating() bool {
	return c.remaining > 0
}

// Flip toggles the card's orientation and starts its flip animation.
// Calls made while the card is animating are ignored and return false.
func (c *Card) Flip() bool {
	if c.Animating() {
		return false
	}

	if c.orientation == FaceUp {
		c.orientation = FaceDown
	} else {
		c.orientation = FaceUp
	}
	c.remaining = c.flipDuration

	return true
}

// Advance moves the flip animation on by one frame
func (c *Card) Advance(dt time.Duration) {
	if dt <= 0 || c.remaining <= 0 {
		return
	}
	c.remaining -= dt
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// OnSelected sets where selection reports go
func (c *Card) OnSelected(fn SelectFunc) {
	c.onSelected = fn
}

// Select reports the card to its listener. The card never filters
// selections itself.
func (c *Card) Select() bool {
	if c.onSelected == nil {
		return false
	}
	return c.onSelected(c)
}

func (c *Card) String() string {
	return string(c.face)
}
