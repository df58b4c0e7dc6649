package engine

// Snapshot captures the observable engine state for determinism checks.
type Snapshot struct {
	Lines     uint32
	GameOver  bool
	Active    Piece
	Pose      Pose
	Next      Piece
	Board     Board
	FallDelay uint32
	Pieces    int // pieces spawned since Init
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	active, pose := e.Active()
	return Snapshot{
		Lines:     *e.lines,
		GameOver:  e.over,
		Active:    active,
		Pose:      pose,
		Next:      e.next,
		Board:     e.board,
		FallDelay: e.fallDelay,
		Pieces:    e.pieces,
	}
}
