package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Paused bool
	Engine engine.Snapshot
	Frame  engine.FrameBuffer
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:   g.tick,
		Paused: g.paused,
		Engine: g.eng.Snapshot(),
		Frame:  g.fb,
	}
}
