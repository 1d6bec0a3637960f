package effects

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minaorangina/concentration/deck"
)

const (
	getReadyText = "Get ready! Memorise the cards..."
	startText    = "Type \"start\" to deal the cards."
	victoryText  = "You matched every pair in %s!"
	matchText    = "It's a match!"
	mismatchText = "No match."
	hiddenFace   = "??"
	removedFace  = "  "
)

// Text renders a session as plain text, redrawing the table whenever a
// card changes.
type Text struct {
	mu    sync.Mutex
	out   io.Writer
	faces map[int]deck.Face
	up    map[int]bool
	cols  int
	panel map[Panel]string
}

// NewText constructs a Text renderer that lays the table out in cols columns
func NewText(out io.Writer, cols int) *Text {
	if cols < 1 {
		cols = 1
	}
	return &Text{
		out:   out,
		faces: map[int]deck.Face{},
		up:    map[int]bool{},
		cols:  cols,
		panel: map[Panel]string{},
	}
}

func (t *Text) send(text string, a ...interface{}) {
	fmt.Fprintf(t.out, text+"\n", a...)
}

func (t *Text) ShowPanel(p Panel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch p {
	case PanelStart:
		t.send(startText)
	case PanelGetReady:
		t.send(getReadyText)
	case PanelVictory:
		t.send(victoryText, t.panel[PanelVictory])
	}
}

func (t *Text) HidePanel(p Panel) {}

func (t *Text) SetPanelText(p Panel, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.panel[p] = text
}

func (t *Text) PlaySound(s Sound) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch s {
	case SoundMatch:
		t.send(matchText)
	case SoundMismatch:
		t.send(mismatchText)
	}
}

func (t *Text) PlayMusic(m Music, loop bool) {}

func (t *Text) StopMusic() {}

func (t *Text) PlaceCard(id int, face deck.Face, pos deck.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faces[id] = face
	t.up[id] = false
}

func (t *Text) FlipCard(id int, to deck.Orientation, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.up[id] = to == deck.FaceUp
	t.draw()
}

func (t *Text) SpawnMatchEffect(pos deck.Position) {}

func (t *Text) DestroyCard(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.faces, id)
	delete(t.up, id)
}

func (t *Text) LoadNextScene() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.send("Thanks for playing!")
}

// Table returns the current table as text
func (t *Text) Table() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table()
}

func (t *Text) draw() {
	fmt.Fprint(t.out, t.table())
}

func (t *Text) table() string {
	if len(t.faces) == 0 {
		return ""
	}

	ids := make([]int, 0, len(t.faces))
	for id := range t.faces {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	last := ids[len(ids)-1]

	var b strings.Builder
	for id := 0; id <= last; id++ {
		face, ok := t.faces[id]
		switch {
		case !ok:
			fmt.Fprintf(&b, "%2d:%-2s ", id, removedFace)
		case t.up[id]:
			fmt.Fprintf(&b, "%2d:%-2s ", id, string(face))
		default:
			fmt.Fprintf(&b, "%2d:%-2s ", id, hiddenFace)
		}
		if (id+1)%t.cols == 0 {
			b.WriteString("\n")
		}
	}
	if (last+1)%t.cols != 0 {
		b.WriteString("\n")
	}

	return b.String()
}
