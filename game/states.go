package game

// State represents where a session is in a game
type State int

const (
	Idle State = iota
	Revealing
	AwaitingFirstPick
	AwaitingSecondPick
	Resolving
	Won
)

var stateNames = map[State]string{
	Idle:               "idle",
	Revealing:          "revealing",
	AwaitingFirstPick:  "awaitingFirstPick",
	AwaitingSecondPick: "awaitingSecondPick",
	Resolving:          "resolving",
	Won:                "won",
}

func (s State) String() string {
	return stateNames[s]
}

// revealPhase splits the Revealing state into its two waits
type revealPhase int

const (
	revealPause revealPhase = iota // get-ready panel showing, cards face down
	revealShow                     // every card face up
)
