package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/concentration/deck"
	"github.com/minaorangina/concentration/effects"
)

// DeckBuilder deals the cards for a new game
type DeckBuilder interface {
	Build(catalog []deck.Face, pairCount int) (deck.Deck, error)
}

// SessionOpts configures a Session
type SessionOpts struct {
	Config  Config
	Effects effects.Effects
	// Builder deals each game. Defaults to a deck.Builder using Rand.
	Builder DeckBuilder
	Rand    *rand.Rand
}

// Session runs one player's game of concentration.
// It is not safe for concurrent use; a single goroutine should feed it
// selections and frame deltas.
type Session struct {
	cfg     Config
	fx      effects.Effects
	builder DeckBuilder

	state     State
	phase     revealPhase
	remaining time.Duration // time left in the current wait

	cards     deck.Deck
	active    []bool
	positions []deck.Position

	first, second *deck.Card
	inputEnabled  bool
	matchedPairs  int

	elapsed      time.Duration
	timerRunning bool
	timerText    string
}

// NewSession constructs an idle session showing the start screen
func NewSession(opts SessionOpts) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	fx := opts.Effects
	if fx == nil {
		fx = effects.Multi()
	}

	builder := opts.Builder
	if builder == nil {
		builder = deck.NewBuilder(opts.Rand, opts.Config.FlipDuration)
	}

	s := &Session{
		cfg:     opts.Config,
		fx:      fx,
		builder: builder,
		state:   Idle,
	}

	s.fx.PlayMusic(effects.MusicIntro, true)
	s.fx.ShowPanel(effects.PanelStart)

	return s, nil
}

// StartGame deals a fresh deck and begins the opening reveal.
// It does nothing while a reveal or resolution is under way.
func (s *Session) StartGame() error {
	if s.waiting() {
		return nil
	}

	d, err := s.builder.Build(s.cfg.Catalog, s.cfg.PairCount)
	if err != nil {
		return err
	}
	if err := checkDeck(d, s.cfg.PairCount); err != nil {
		return err
	}

	for _, c := range s.ActiveCards() {
		s.fx.DestroyCard(c.ID())
	}

	s.cards = d
	s.active = make([]bool, len(d))
	s.positions = deck.Layout(len(d), s.cfg.Columns, s.cfg.Spacing)
	for i, c := range d {
		s.active[i] = true
		c.OnSelected(s.cardSelected)
		s.fx.PlaceCard(c.ID(), c.Face(), s.positions[i])
	}

	s.first, s.second = nil, nil
	s.inputEnabled = false
	s.matchedPairs = 0
	s.elapsed = 0
	s.timerRunning = false
	s.timerText = ""

	s.fx.StopMusic()
	s.fx.HidePanel(effects.PanelStart)
	s.fx.HidePanel(effects.PanelVictory)
	s.fx.HidePanel(effects.PanelTimer)
	s.fx.ShowPanel(effects.PanelGetReady)

	s.state = Revealing
	s.phase = revealPause
	s.remaining = s.cfg.OpeningPause

	return nil
}

// Select reports a selection of the card with the given id.
// It returns whether the selection was accepted.
func (s *Session) Select(id int) bool {
	c, ok := s.Card(id)
	if !ok {
		return false
	}
	return c.Select()
}

// cardSelected receives every card's selection report
func (s *Session) cardSelected(c *deck.Card) bool {
	if !s.inputEnabled || !s.inPlay(c) {
		return false
	}
	if c.Orientation() != deck.FaceDown || c.Animating() {
		return false
	}

	switch s.state {
	case AwaitingFirstPick:
		s.flip(c)
		s.fx.PlaySound(effects.SoundClick)
		s.first = c
		s.state = AwaitingSecondPick
		return true

	case AwaitingSecondPick:
		if c == s.first {
			return false
		}
		s.flip(c)
		s.fx.PlaySound(effects.SoundClick)
		s.second = c
		s.inputEnabled = false
		s.state = Resolving
		s.remaining = ResolveDelay
		return true
	}

	return false
}

// Advance moves the session on by one frame.
// Waits that end part way through dt hand the rest of dt to whatever
// comes next.
func (s *Session) Advance(dt time.Duration) {
	for dt > 0 {
		waiting := s.waiting()

		step := dt
		if waiting && s.remaining < step {
			step = s.remaining
		}

		for _, c := range s.ActiveCards() {
			c.Advance(step)
		}
		if s.timerRunning {
			s.elapsed += step
			s.refreshTimer()
		}
		dt -= step

		if waiting {
			s.remaining -= step
			if s.remaining <= 0 {
				s.remaining = 0
				s.resume()
			}
		}
	}
}

// LoadNextScene moves on from a won game
func (s *Session) LoadNextScene() bool {
	if s.state != Won {
		return false
	}
	s.fx.LoadNextScene()
	return true
}

// checkDeck makes sure a dealt deck holds every face twice, with ids
// matching table positions
func checkDeck(d deck.Deck, pairCount int) error {
	if len(d) != 2*pairCount {
		return fmt.Errorf("%w: dealt %d cards for %d pairs", ErrInvalidConfiguration, len(d), pairCount)
	}

	counts := map[deck.Face]int{}
	for i, c := range d {
		if c == nil || c.ID() != i {
			return fmt.Errorf("%w: card at position %d has the wrong id", ErrInvalidConfiguration, i)
		}
		counts[c.Face()]++
	}
	for face, n := range counts {
		if n != 2 {
			return fmt.Errorf("%w: face %q dealt %d times", ErrInvalidConfiguration, face, n)
		}
	}

	return nil
}

func (s *Session) waiting() bool {
	return s.state == Revealing || s.state == Resolving
}

// resume continues whichever sequence was waiting
func (s *Session) resume() {
	switch s.state {
	case Revealing:
		if s.phase == revealPause {
			s.fx.HidePanel(effects.PanelGetReady)
			for _, c := range s.ActiveCards() {
				s.flip(c)
			}
			s.phase = revealShow
			s.remaining = s.cfg.RevealDuration
			return
		}

		for _, c := range s.ActiveCards() {
			s.flip(c)
		}
		s.inputEnabled = true
		s.startTimer()
		s.state = AwaitingFirstPick

	case Resolving:
		s.resolve()
	}
}

func (s *Session) resolve() {
	first, second := s.first, s.second
	s.first, s.second = nil, nil

	if first != nil && second != nil && first != second && first.Face() == second.Face() {
		s.fx.PlaySound(effects.SoundMatch)
		s.remove(first)
		s.remove(second)
		s.matchedPairs++

		if s.matchedPairs == s.PairCount() {
			s.win()
			return
		}
	} else {
		s.fx.PlaySound(effects.SoundMismatch)
		for _, c := range []*deck.Card{first, second} {
			if c != nil {
				s.flip(c)
			}
		}
	}

	s.inputEnabled = true
	s.state = AwaitingFirstPick
}

func (s *Session) win() {
	s.timerRunning = false
	s.inputEnabled = false
	s.state = Won

	s.fx.HidePanel(effects.PanelTimer)
	s.fx.PlayMusic(effects.MusicVictory, false)
	s.fx.SetPanelText(effects.PanelVictory, FormatElapsed(s.elapsed))
	s.fx.ShowPanel(effects.PanelVictory)
}

func (s *Session) startTimer() {
	s.elapsed = 0
	s.timerRunning = true
	s.timerText = FormatElapsed(0)
	s.fx.SetPanelText(effects.PanelTimer, s.timerText)
	s.fx.ShowPanel(effects.PanelTimer)
}

// refreshTimer updates the timer panel when the shown time changes
func (s *Session) refreshTimer() {
	text := FormatElapsed(s.elapsed)
	if text == s.timerText {
		return
	}
	s.timerText = text
	s.fx.SetPanelText(effects.PanelTimer, text)
}

func (s *Session) flip(c *deck.Card) bool {
	if !c.Flip() {
		return false
	}
	s.fx.FlipCard(c.ID(), c.Orientation(), c.FlipDuration())
	return true
}

func (s *Session) remove(c *deck.Card) {
	id := c.ID()
	s.active[id] = false
	s.fx.SpawnMatchEffect(s.positions[id])
	s.fx.DestroyCard(id)
}

// inPlay reports whether c belongs to the current deck and is still on the table
func (s *Session) inPlay(c *deck.Card) bool {
	id := c.ID()
	return id >= 0 && id < len(s.cards) && s.cards[id] == c && s.active[id]
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) InputEnabled() bool {
	return s.inputEnabled
}

func (s *Session) MatchedPairs() int {
	return s.matchedPairs
}

// PairCount returns the number of pairs dealt in the current game
func (s *Session) PairCount() int {
	if s.cards == nil {
		return s.cfg.PairCount
	}
	return s.cards.PairCount()
}

func (s *Session) Won() bool {
	return s.state == Won
}

func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

func (s *Session) TimerRunning() bool {
	return s.timerRunning
}

// Selected returns the cards picked so far this turn
func (s *Session) Selected() (first, second *deck.Card) {
	return s.first, s.second
}

// Card returns the card with the given id if it is still on the table
func (s *Session) Card(id int) (*deck.Card, bool) {
	if id < 0 || id >= len(s.cards) || !s.active[id] {
		return nil, false
	}
	return s.cards[id], true
}

// ActiveCards returns the cards still on the table
func (s *Session) ActiveCards() []*deck.Card {
	cards := []*deck.Card{}
	for i, c := range s.cards {
		if s.active[i] {
			cards = append(cards, c)
		}
	}
	return cards
}

// CardSnapshot is one table slot at a point in time
type CardSnapshot struct {
	ID          int
	Face        deck.Face
	Orientation deck.Orientation
	Animating   bool
	Removed     bool
	Position    deck.Position
}

// Snapshot is a copy of a session's state
type Snapshot struct {
	State        State
	InputEnabled bool
	MatchedPairs int
	PairCount    int
	Elapsed      time.Duration
	TimerRunning bool
	Cards        []CardSnapshot
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.state,
		InputEnabled: s.inputEnabled,
		MatchedPairs: s.matchedPairs,
		PairCount:    s.PairCount(),
		Elapsed:      s.elapsed,
		TimerRunning: s.timerRunning,
		Cards:        make([]CardSnapshot, 0, len(s.cards)),
	}

	for i, c := range s.cards {
		snap.Cards = append(snap.Cards, CardSnapshot{
			ID:          c.ID(),
			Face:        c.Face(),
			Orientation: c.Orientation(),
			Animating:   c.Animating(),
			Removed:     !s.active[i],
			Position:    s.positions[i],
		})
	}

	return snap
}
