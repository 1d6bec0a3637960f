package effects

import (
	"time"

	"github.com/minaorangina/concentration/deck"
	"go.uber.org/zap"
)

// Logger writes every effect to a zap logger at debug level
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("effects")}
}

func (l *Logger) ShowPanel(p Panel) {
	l.log.Debug("show panel", zap.Stringer("panel", p))
}

func (l *Logger) HidePanel(p Panel) {
	l.log.Debug("hide panel", zap.Stringer("panel", p))
}

func (l *Logger) SetPanelText(p Panel, text string) {
	l.log.Debug("panel text", zap.Stringer("panel", p), zap.String("text", text))
}

func (l *Logger) PlaySound(s Sound) {
	l.log.Debug("play sound", zap.Stringer("sound", s))
}

func (l *Logger) PlayMusic(m Music, loop bool) {
	l.log.Debug("play music", zap.Stringer("music", m), zap.Bool("loop", loop))
}

func (l *Logger) StopMusic() {
	l.log.Debug("stop music")
}

func (l *Logger) PlaceCard(id int, face deck.Face, pos deck.Position) {
	l.log.Debug("place card",
		zap.Int("card", id),
		zap.String("face", string(face)),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
}

func (l *Logger) FlipCard(id int, to deck.Orientation, d time.Duration) {
	l.log.Debug("flip card", zap.Int("card", id), zap.Stringer("to", to), zap.Duration("duration", d))
}

func (l *Logger) SpawnMatchEffect(pos deck.Position) {
	l.log.Debug("match effect", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
}

func (l *Logger) DestroyCard(id int) {
	l.log.Debug("destroy card", zap.Int("card", id))
}

func (l *Logger) LoadNextScene() {
	l.log.Info("load next scene")
}
