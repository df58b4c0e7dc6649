// Package engine implements the falling-block simulation: a fixed 10x20 field,
// tetromino spawning, player movement with key auto-repeat, gravity, merging,
// line clearing and rendering into a packed-bit frame buffer.
//
// The engine has no platform dependencies. A host drives it by calling Tick (or
// Step) as often as it likes; the engine paces itself from the clock value and
// writes its visible state into a caller-owned FrameBuffer and line counter.
package engine

import (
	"math/rand"
	"time"
)

// SpawnCol is the column of the bounding box of every freshly spawned piece.
const SpawnCol = 3

// Timing holds the pacing thresholds, all in milliseconds.
type Timing struct {
	FallDelay   uint32 // gravity interval
	RepeatSlow  uint32 // delay before a held key starts repeating
	RepeatFast  uint32 // repeat interval for left, right and rotate
	RepeatRapid uint32 // repeat interval for soft drop
}

// DefaultTiming returns the classic pacing: one row per second, 200ms initial
// repeat delay, then 100ms (40ms for soft drop).
func DefaultTiming() Timing {
	return Timing{
		FallDelay:   1000,
		RepeatSlow:  200,
		RepeatFast:  100,
		RepeatRapid: 40,
	}
}

// Randomizer supplies uniform integers in [0, n). *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRandomizer replaces the piece generator.
func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed seeds the default piece generator.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTiming overrides the pacing thresholds.
func WithTiming(t Timing) Option {
	return func(e *Engine) {
		e.timing = t
	}
}

// Engine is the simulation state machine. It is not safe for concurrent use;
// the host must not touch the frame buffer or line counter during a tick.
type Engine struct {
	fb     *FrameBuffer
	lines  *uint32
	clock  Clock
	input  InputSource
	rng    Randomizer
	timing Timing

	board Board

	kind Kind // active piece
	pose Pose
	next Piece

	fallDelay uint32
	over      bool
	pieces    int

	prevMask   Mask
	repeatAt   [slotCount]uint32
	lastUpdate uint32
}

// New creates an engine writing into fb and lines. Call Init before the first
// tick.
func New(fb *FrameBuffer, lines *uint32, clock Clock, input InputSource, opts ...Option) *Engine {
	e := &Engine{
		fb:     fb,
		lines:  lines,
		clock:  clock,
		input:  input,
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.fallDelay = e.timing.FallDelay
	return e
}

// Init starts a new game: zeroes the line counter, empties the field, redraws
// the border and spawns the first piece. Calling it again fully restarts.
func (e *Engine) Init() {
	*e.lines = 0
	e.next = e.roll()
	e.board.Clear()
	e.fb.drawBorder()
	e.fallDelay = e.timing.FallDelay
	e.pieces = 0
	e.over = false
	e.spawn()
}

// Tick samples the clock and input source and advances one step.
func (e *Engine) Tick() {
	e.Step(e.input.Input(), e.clock.Now())
}

// Step advances the simulation given the controller state and the elapsed
// time in milliseconds.
func (e *Engine) Step(mask Mask, now uint32) {
	// A reset restarts the game and the rest of the step runs on the new state.
	if mask.Has(KeyReset) {
		e.Init()
	}

	if e.over {
		e.render()
		return
	}

	left := e.autoRepeat(slotLeft, KeyLeft, mask, now, e.timing.RepeatFast)
	right := e.autoRepeat(slotRight, KeyRight, mask, now, e.timing.RepeatFast)
	rotate := e.autoRepeat(slotRotate, KeyUp, mask, now, e.timing.RepeatFast)
	down := e.autoRepeat(slotDown, KeyDown, mask, now, e.timing.RepeatRapid)
	e.prevMask = mask

	cand := e.pose
	if left {
		cand.Col--
	}
	if right {
		cand.Col++
	}
	if rotate {
		cand.Rot = (cand.Rot + 1) % RotationCount
	}
	if down {
		cand.Row++
	}
	if (left || right || rotate || down) && e.board.Fits(e.kind, cand) {
		e.pose = cand
	}

	if now > e.lastUpdate+e.fallDelay {
		below := e.pose
		below.Row++
		if e.board.Fits(e.kind, below) {
			e.pose = below
		} else {
			e.land()
		}
		e.lastUpdate = now
	}

	e.render()
}

// land merges the active piece, clears full rows and spawns the next piece.
func (e *Engine) land() {
	e.board.Merge(e.kind, e.pose)
	*e.lines += uint32(e.board.ClearLines())
	e.spawn()
}

// spawn promotes the pre-rolled piece, rolls a new one and places the active
// piece at the top. The game ends if the spawn pose is blocked; the piece
// stays where it is.
func (e *Engine) spawn() {
	e.kind = e.next.Kind
	rot := e.next.Rotation
	e.next = e.roll()
	e.pose = Pose{Col: SpawnCol, Row: SpawnRow(e.kind, rot), Rot: rot}
	e.pieces++
	if !e.board.Fits(e.kind, e.pose) {
		e.over = true
	}
}

func (e *Engine) roll() Piece {
	k := Kind(e.rng.Intn(KindCount))
	return Piece{Kind: k, Rotation: e.rng.Intn(RotationCount)}
}

// GameOver reports whether the last spawned piece could not be placed.
func (e *Engine) GameOver() bool {
	return e.over
}

// Active returns the active piece and its pose.
func (e *Engine) Active() (Piece, Pose) {
	return Piece{Kind: e.kind, Rotation: e.pose.Rot}, e.pose
}

// Next returns the pre-rolled piece that will spawn after the active one.
func (e *Engine) Next() Piece {
	return e.next
}

// Board returns a copy of the playing field.
func (e *Engine) Board() Board {
	return e.board
}

// FallDelay returns the current gravity interval in milliseconds.
func (e *Engine) FallDelay() uint32 {
	return e.fallDelay
}

// SetFallDelay changes the gravity interval until the next Init.
func (e *Engine) SetFallDelay(ms uint32) {
	e.fallDelay = ms
}
