package game

import (
	"fmt"
	"time"

	"github.com/minaorangina/concentration/deck"
)

// ResolveDelay is how long two selected cards stay up before they are compared
const ResolveDelay = time.Second

// ErrInvalidConfiguration is returned for tunables a game cannot be played with
var ErrInvalidConfiguration = deck.ErrInvalidConfiguration

// Config holds a session's tunables
type Config struct {
	Catalog        []deck.Face
	PairCount      int
	Columns        int
	Spacing        float64
	OpeningPause   time.Duration
	RevealDuration time.Duration
	FlipDuration   time.Duration
}

// DefaultCatalog is the face catalog used when none is configured
var DefaultCatalog = []deck.Face{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// DefaultConfig returns the tunables of a standard five pair game
func DefaultConfig() Config {
	return Config{
		Catalog:        DefaultCatalog,
		PairCount:      5,
		Columns:        5,
		Spacing:        0.5,
		OpeningPause:   2 * time.Second,
		RevealDuration: 5 * time.Second,
		FlipDuration:   500 * time.Millisecond,
	}
}

// Validate checks the tunables before any game is dealt
func (c Config) Validate() error {
	if _, err := deck.Pairs(c.Catalog, c.PairCount); err != nil {
		return err
	}
	if c.Columns < 1 {
		return fmt.Errorf("%w: columns must be at least 1, got %d", ErrInvalidConfiguration, c.Columns)
	}
	if c.Spacing < 0 {
		return fmt.Errorf("%w: negative spacing %v", ErrInvalidConfiguration, c.Spacing)
	}
	if c.OpeningPause < 0 || c.RevealDuration < 0 || c.FlipDuration < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfiguration)
	}
	// cards must have finished turning before they are turned back
	if c.FlipDuration > c.RevealDuration {
		return fmt.Errorf("%w: flip duration %s is longer than the reveal %s",
			ErrInvalidConfiguration, c.FlipDuration, c.RevealDuration)
	}
	if c.FlipDuration > ResolveDelay {
		return fmt.Errorf("%w: flip duration %s is longer than the resolve delay %s",
			ErrInvalidConfiguration, c.FlipDuration, ResolveDelay)
	}
	return nil
}

// FormatElapsed renders a duration as minutes:seconds, e.g. 2:05
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
