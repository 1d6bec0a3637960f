package protocol

import (
	"github.com/minaorangina/concentration/deck"
)

// InboundMessage is a message from a player to a GameEngine
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	CardID   int    `json:"cardID"`
}

// OutboundMessage is a message from a GameEngine to its players.
// Effect messages use the fields relevant to their command.
type OutboundMessage struct {
	GameID      string         `json:"gameID"`
	Command     Cmd            `json:"command"`
	CardID      int            `json:"cardID"`
	Face        deck.Face      `json:"face,omitempty"`
	Orientation string         `json:"orientation,omitempty"`
	DurationMS  int64          `json:"durationMs,omitempty"`
	Position    *deck.Position `json:"position,omitempty"`
	Panel       string         `json:"panel,omitempty"`
	Sound       string         `json:"sound,omitempty"`
	Music       string         `json:"music,omitempty"`
	Loop        bool           `json:"loop,omitempty"`
	Text        string         `json:"text,omitempty"`
	State       *GameState     `json:"state,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// GameState is the public view of a game.
// Faces of face-down cards are withheld.
type GameState struct {
	GameID       string     `json:"gameID"`
	State        string     `json:"state"`
	InputEnabled bool       `json:"inputEnabled"`
	MatchedPairs int        `json:"matchedPairs"`
	PairCount    int        `json:"pairCount"`
	Elapsed      string     `json:"elapsed"`
	TimerRunning bool       `json:"timerRunning"`
	Cards        []CardView `json:"cards"`
}

// CardView is the public view of a card slot
type CardView struct {
	CardID      int           `json:"cardID"`
	Face        deck.Face     `json:"face,omitempty"`
	Orientation string        `json:"orientation"`
	Removed     bool          `json:"removed,omitempty"`
	Position    deck.Position `json:"position"`
}

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// inbound
	Start
	Select
	NextScene
	// outbound
	State
	Error
	ShowPanel
	HidePanel
	PanelText
	PlaySound
	PlayMusic
	StopMusic
	PlaceCard
	FlipCard
	MatchEffect
	DestroyCard
	LoadScene
)

var CmdNames = map[Cmd]string{
	Null:        "Null",
	Start:       "Start",
	Select:      "Select",
	NextScene:   "NextScene",
	State:       "State",
	Error:       "Error",
	ShowPanel:   "ShowPanel",
	HidePanel:   "HidePanel",
	PanelText:   "PanelText",
	PlaySound:   "PlaySound",
	PlayMusic:   "PlayMusic",
	StopMusic:   "StopMusic",
	PlaceCard:   "PlaceCard",
	FlipCard:    "FlipCard",
	MatchEffect: "MatchEffect",
	DestroyCard: "DestroyCard",
	LoadScene:   "LoadScene",
}

var NameToCmd = map[string]Cmd{
	"Null":        Null,
	"Start":       Start,
	"Select":      Select,
	"NextScene":   NextScene,
	"State":       State,
	"Error":       Error,
	"ShowPanel":   ShowPanel,
	"HidePanel":   HidePanel,
	"PanelText":   PanelText,
	"PlaySound":   PlaySound,
	"PlayMusic":   PlayMusic,
	"StopMusic":   StopMusic,
	"PlaceCard":   PlaceCard,
	"FlipCard":    FlipCard,
	"MatchEffect": MatchEffect,
	"DestroyCard": DestroyCard,
	"LoadScene":   LoadScene,
}

func (c Cmd) String() string {
	return CmdNames[c]
}
