package game

import (
	"testing"
	"time"

	"github.com/minaorangina/concentration/deck"
	"github.com/minaorangina/concentration/effects"
	utils "github.com/minaorangina/concentration/internal"
)

const (
	testPause  = 2 * time.Second
	testReveal = 5 * time.Second
	testFlip   = 500 * time.Millisecond
)

// fixedBuilder deals the same faces every time, in order
type fixedBuilder struct {
	faces []deck.Face
	err   error
	calls int
}

func (b *fixedBuilder) Build(catalog []deck.Face, pairCount int) (deck.Deck, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	d := make(deck.Deck, len(b.faces))
	for i, f := range b.faces {
		d[i] = deck.NewCard(i, f, testFlip)
	}
	return d, nil
}

func testConfig(pairCount int) Config {
	return Config{
		Catalog:        []deck.Face{"A", "B", "C", "D", "E"},
		PairCount:      pairCount,
		Columns:        3,
		Spacing:        1,
		OpeningPause:   testPause,
		RevealDuration: testReveal,
		FlipDuration:   testFlip,
	}
}

func newTestSession(t *testing.T, faces ...deck.Face) (*Session, *effects.Recorder) {
	t.Helper()

	fx := effects.NewRecorder()
	s, err := NewSession(SessionOpts{
		Config:  testConfig(len(faces) / 2),
		Effects: fx,
		Builder: &fixedBuilder{faces: faces},
	})
	utils.AssertNoError(t, err)

	return s, fx
}

// playableSession returns a session that has finished its opening reveal
// and whose cards have all turned face down
func playableSession(t *testing.T, faces ...deck.Face) (*Session, *effects.Recorder) {
	t.Helper()

	s, fx := newTestSession(t, faces...)
	utils.AssertNoError(t, s.StartGame())
	s.Advance(testPause + testReveal)
	s.Advance(testFlip)
	utils.AssertEqual(t, s.State(), AwaitingFirstPick)

	fx.Reset()
	return s, fx
}

// waitForFlips lets any flip animations finish
func waitForFlips(s *Session) {
	s.Advance(testFlip)
}
