package deck

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Deck represents the cards in play, ordered by table position
type Deck []*Card

// Faces returns the face of every card, in deck order
func (d Deck) Faces() []Face {
	faces := make([]Face, 0, len(d))
	for _, c := range d {
		faces = append(faces, c.Face())
	}
	return faces
}

// PairCount returns the number of distinct faces in the deck
func (d Deck) PairCount() int {
	return len(d) / 2
}

// Builder builds shuffled decks
type Builder struct {
	rng          *rand.Rand
	flipDuration time.Duration
}

// NewBuilder constructs a Builder. A nil rng is seeded from the clock.
func NewBuilder(rng *rand.Rand, flipDuration time.Duration) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{rng: rng, flipDuration: flipDuration}
}

// Build takes the first pairCount faces of the catalog, duplicates them
// and returns them shuffled as face-down cards with ids matching their
// position.
func (b *Builder) Build(catalog []Face, pairCount int) (Deck, error) {
	faces, err := Pairs(catalog, pairCount)
	if err != nil {
		return nil, err
	}

	Shuffle(faces, b.rng)

	d := make(Deck, len(faces))
	for i, f := range faces {
		d[i] = NewCard(i, f, b.flipDuration)
	}

	return d, nil
}

// Pairs returns the first pairCount faces of the catalog, twice over
func Pairs(catalog []Face, pairCount int) ([]Face, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: pair count must be at least 1, got %d", ErrInvalidConfiguration, pairCount)
	}
	if pairCount > len(catalog) {
		return nil, fmt.Errorf("%w: pair count %d exceeds catalog size %d",
			ErrInvalidConfiguration, pairCount, len(catalog))
	}

	seen := map[Face]struct{}{}
	for _, f := range catalog[:pairCount] {
		if _, ok := seen[f]; ok {
			return nil, fmt.Errorf("%w: face %q appears more than once in the catalog", ErrInvalidConfiguration, f)
		}
		seen[f] = struct{}{}
	}

	faces := make([]Face, 0, pairCount*2)
	faces = append(faces, catalog[:pairCount]...)
	faces = append(faces, catalog[:pairCount]...)

	return faces, nil
}

// Shuffle shuffles faces in place (Fisher-Yates)
func Shuffle(faces []Face, rng *rand.Rand) {
	for n := len(faces); n > 1; n-- {
		k := rng.Intn(n)
		faces[n-1], faces[k] = faces[k], faces[n-1]
	}
}

// Position is a card's place on the table, relative to the grid centre
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout lays count cards out in a grid centred on the origin.
// Rows run downwards from the top.
func Layout(count, columns int, spacing float64) []Position {
	if count <= 0 || columns <= 0 {
		return []Position{}
	}

	rows := int(math.Ceil(float64(count) / float64(columns)))
	cols := columns
	if count < cols {
		cols = count
	}

	offsetX := float64(cols-1) * spacing * 0.5
	offsetY := float64(rows-1) * spacing * 0.5

	positions := make([]Position, count)
	for i := range positions {
		row, col := i/columns, i%columns
		positions[i] = Position{
			X: float64(col)*spacing - offsetX,
			Y: -float64(row)*spacing + offsetY,
		}
	}

	return positions
}
