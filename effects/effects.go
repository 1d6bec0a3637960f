// Package effects defines the presentation collaborators driven by a game
// session. Effects are fire-and-forget: a session never reads anything back.
package effects

import (
	"time"

	"github.com/minaorangina/concentration/deck"
)

// Panel identifies a UI panel
type Panel int

const (
	PanelStart Panel = iota
	PanelGetReady
	PanelTimer
	PanelVictory
)

var panelNames = map[Panel]string{
	PanelStart:    "start",
	PanelGetReady: "getReady",
	PanelTimer:    "timer",
	PanelVictory:  "victory",
}

func (p Panel) String() string {
	return panelNames[p]
}

// Sound identifies a one-shot sound effect
type Sound int

const (
	SoundClick Sound = iota
	SoundMatch
	SoundMismatch
)

var soundNames = map[Sound]string{
	SoundClick:    "click",
	SoundMatch:    "match",
	SoundMismatch: "mismatch",
}

func (s Sound) String() string {
	return soundNames[s]
}

// Music identifies a music track
type Music int

const (
	MusicIntro Music = iota
	MusicVictory
)

var musicNames = map[Music]string{
	MusicIntro:   "intro",
	MusicVictory: "victory",
}

func (m Music) String() string {
	return musicNames[m]
}

// Effects is everything a session asks the presentation layer to do
type Effects interface {
	ShowPanel(p Panel)
	HidePanel(p Panel)
	SetPanelText(p Panel, text string)
	PlaySound(s Sound)
	PlayMusic(m Music, loop bool)
	StopMusic()
	PlaceCard(id int, face deck.Face, pos deck.Position)
	FlipCard(id int, to deck.Orientation, d time.Duration)
	SpawnMatchEffect(pos deck.Position)
	DestroyCard(id int)
	LoadNextScene()
}

// Multi forwards every effect to each of fxs in turn
func Multi(fxs ...Effects) Effects {
	return multi(fxs)
}

type multi []Effects

func (m multi) ShowPanel(p Panel) {
	for _, fx := range m {
		fx.ShowPanel(p)
	}
}

func (m multi) HidePanel(p Panel) {
	for _, fx := range m {
		fx.HidePanel(p)
	}
}

func (m multi) SetPanelText(p Panel, text string) {
	for _, fx := range m {
		fx.SetPanelText(p, text)
	}
}

func (m multi) PlaySound(s Sound) {
	for _, fx := range m {
		fx.PlaySound(s)
	}
}

func (m multi) PlayMusic(mu Music, loop bool) {
	for _, fx := range m {
		fx.PlayMusic(mu, loop)
	}
}

func (m multi) StopMusic() {
	for _, fx := range m {
		fx.StopMusic()
	}
}

func (m multi) PlaceCard(id int, face deck.Face, pos deck.Position) {
	for _, fx := range m {
		fx.PlaceCard(id, face, pos)
	}
}

func (m multi) FlipCard(id int, to deck.Orientation, d time.Duration) {
	for _, fx := range m {
		fx.FlipCard(id, to, d)
	}
}

func (m multi) SpawnMatchEffect(pos deck.Position) {
	for _, fx := range m {
		fx.SpawnMatchEffect(pos)
	}
}

func (m multi) DestroyCard(id int) {
	for _, fx := range m {
		fx.DestroyCard(id)
	}
}

func (m multi) LoadNextScene() {
	for _, fx := range m {
		fx.LoadNextScene()
	}
}
