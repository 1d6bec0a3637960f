package effects

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minaorangina/concentration/deck"
)

// Call is one recorded effect
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, fmt.Sprintf("%+v", a))
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// Recorder is an Effects that remembers what it was asked to do
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

// Calls returns a copy of every recorded call
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call{}, r.calls...)
}

// Strings returns every recorded call formatted as name(args)
func (r *Recorder) Strings() []string {
	calls := r.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

// Count returns how many calls were made to the named effect
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Contains reports whether the formatted call was recorded
func (r *Recorder) Contains(call string) bool {
	for _, s := range r.Strings() {
		if s == call {
			return true
		}
	}
	return false
}

// Reset forgets every recorded call
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) ShowPanel(p Panel)                 { r.record("ShowPanel", p) }
func (r *Recorder) HidePanel(p Panel)                 { r.record("HidePanel", p) }
func (r *Recorder) SetPanelText(p Panel, text string) { r.record("SetPanelText", p, text) }
func (r *Recorder) PlaySound(s Sound)                 { r.record("PlaySound", s) }
func (r *Recorder) PlayMusic(m Music, loop bool)      { r.record("PlayMusic", m, loop) }
func (r *Recorder) StopMusic()                        { r.record("StopMusic") }
func (r *Recorder) SpawnMatchEffect(pos deck.Position) {
	r.record("SpawnMatchEffect", pos)
}
func (r *Recorder) DestroyCard(id int) { r.record("DestroyCard", id) }
func (r *Recorder) LoadNextScene()     { r.record("LoadNextScene") }

func (r *Recorder) PlaceCard(id int, face deck.Face, pos deck.Position) {
	r.record("PlaceCard", id, face, pos)
}

func (r *Recorder) FlipCard(id int, to deck.Orientation, d time.Duration) {
	r.record("FlipCard", id, to, d)
}
