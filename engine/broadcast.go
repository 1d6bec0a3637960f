package engine

import (
	"time"

	"github.com/minaorangina/concentration/deck"
	"github.com/minaorangina/concentration/effects"
	"github.com/minaorangina/concentration/protocol"
)

// broadcaster turns session effects into messages for every subscriber
type broadcaster struct {
	ge *gameEngine
}

func (b broadcaster) send(msg protocol.OutboundMessage) {
	msg.GameID = b.ge.id
	b.ge.broadcast(msg)
}

func (b broadcaster) ShowPanel(p effects.Panel) {
	b.send(protocol.OutboundMessage{Command: protocol.ShowPanel, Panel: p.String()})
}

func (b broadcaster) HidePanel(p effects.Panel) {
	b.send(protocol.OutboundMessage{Command: protocol.HidePanel, Panel: p.String()})
}

func (b broadcaster) SetPanelText(p effects.Panel, text string) {
	b.send(protocol.OutboundMessage{Command: protocol.PanelText, Panel: p.String(), Text: text})
}

func (b broadcaster) PlaySound(s effects.Sound) {
	b.send(protocol.OutboundMessage{Command: protocol.PlaySound, Sound: s.String()})
}

func (b broadcaster) PlayMusic(m effects.Music, loop bool) {
	b.send(protocol.OutboundMessage{Command: protocol.PlayMusic, Music: m.String(), Loop: loop})
}

func (b broadcaster) StopMusic() {
	b.send(protocol.OutboundMessage{Command: protocol.StopMusic})
}

// PlaceCard never carries the face: players only see faces through FlipCard
func (b broadcaster) PlaceCard(id int, face deck.Face, pos deck.Position) {
	b.send(protocol.OutboundMessage{Command: protocol.PlaceCard, CardID: id, Position: &pos})
}

func (b broadcaster) FlipCard(id int, to deck.Orientation, d time.Duration) {
	msg := protocol.OutboundMessage{
		Command:     protocol.FlipCard,
		CardID:      id,
		Orientation: to.String(),
		DurationMS:  d.Milliseconds(),
	}
	if to == deck.FaceUp {
		if c, ok := b.ge.session.Card(id); ok {
			msg.Face = c.Face()
		}
	}
	b.send(msg)
}

func (b broadcaster) SpawnMatchEffect(pos deck.Position) {
	b.send(protocol.OutboundMessage{Command: protocol.MatchEffect, Position: &pos})
}

func (b broadcaster) DestroyCard(id int) {
	b.send(protocol.OutboundMessage{Command: protocol.DestroyCard, CardID: id})
}

func (b broadcaster) LoadNextScene() {
	b.send(protocol.OutboundMessage{Command: protocol.LoadScene})
}
