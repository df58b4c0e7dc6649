package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays a fixed sequence of values.
type scriptedRand struct {
	vals []int
	i    int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// noGravity is far enough in the future that gravity never fires in a test.
const noGravity = 1 << 30

func newTestEngine(t *testing.T, seq ...int) (*Engine, *FrameBuffer, *uint32) {
	t.Helper()
	var fb FrameBuffer
	var lines uint32
	idle := InputFunc(func() Mask { return 0 })
	zero := ClockFunc(func() uint32 { return 0 })
	e := New(&fb, &lines, zero, idle, WithRandomizer(&scriptedRand{vals: seq}))
	e.Init()
	return e, &fb, &lines
}

// dropUntilLanded runs gravity-only steps until the active piece lands.
func dropUntilLanded(t *testing.T, e *Engine, now *uint32) {
	t.Helper()
	start := e.pieces
	for i := 0; i < BoardHeight+2; i++ {
		*now += e.FallDelay() + 1
		e.Step(0, *now)
		if e.pieces != start || e.GameOver() {
			return
		}
	}
	t.Fatalf("piece did not land after %d gravity steps", BoardHeight+2)
}

func TestInitState(t *testing.T) {
	e, fb, lines := newTestEngine(t, int(KindO), 0)
	*lines = 7
	e.Init()

	assert.Zero(t, *lines)
	assert.False(t, e.GameOver())
	assert.Equal(t, Board{}, e.Board())

	piece, pose := e.Active()
	assert.Equal(t, KindO, piece.Kind)
	assert.Equal(t, SpawnCol, pose.Col)
	b := e.Board()
	assert.True(t, b.Fits(piece.Kind, pose))

	for y := 0; y < BoardHeight; y++ {
		assert.Equal(t, WallRow, fb[FieldTop+y], "field row %d", y)
	}
	assert.Equal(t, FloorRow, fb[FieldTop+BoardHeight])
}

func TestSpawnPromotesNextPiece(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindI), 2, int(KindJ), 0, int(KindT), 1)

	piece, pose := e.Active()
	assert.Equal(t, Piece{Kind: KindI, Rotation: 2}, piece)
	assert.Equal(t, Pose{Col: SpawnCol, Row: -2, Rot: 2}, pose)
	assert.Equal(t, Piece{Kind: KindJ, Rotation: 0}, e.Next())

	e.spawn()
	piece, _ = e.Active()
	assert.Equal(t, Piece{Kind: KindJ, Rotation: 0}, piece)
	assert.Equal(t, Piece{Kind: KindT, Rotation: 1}, e.Next())
}

func TestInitIdempotent(t *testing.T) {
	once, fbOnce, _ := newTestEngine(t, int(KindT), 1)
	twice, fbTwice, _ := newTestEngine(t, int(KindT), 1)
	twice.Init()

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
	assert.Equal(t, *fbOnce, *fbTwice)

	// a played game leaves no residue after re-initializing
	var now uint32
	dropUntilLanded(t, twice, &now)
	dropUntilLanded(t, twice, &now)
	require.NotEqual(t, Board{}, twice.Board())
	twice.Init()

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
	assert.Equal(t, *fbOnce, *fbTwice)
}

func TestGravityDropMerges(t *testing.T) {
	e, _, lines := newTestEngine(t, int(KindO), 0)

	var now uint32
	dropUntilLanded(t, e, &now)

	b := e.Board()
	assert.Equal(t, uint32(0x030), b[19])
	assert.Equal(t, uint32(0x030), b[18])
	assert.Zero(t, *lines)
	assert.False(t, e.GameOver())
	assert.Equal(t, 2, e.pieces)
}

func TestGravityWaitsForFallDelay(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindO), 0)
	_, start := e.Active()

	e.Step(0, e.FallDelay())
	_, pose := e.Active()
	assert.Equal(t, start, pose, "gravity must not fire at exactly the delay")

	e.Step(0, e.FallDelay()+1)
	_, pose = e.Active()
	assert.Equal(t, start.Row+1, pose.Row)
}

func TestStackingToTopEndsGame(t *testing.T) {
	e, _, lines := newTestEngine(t, int(KindO), 0)

	var now uint32
	for i := 0; i < 20 && !e.GameOver(); i++ {
		dropUntilLanded(t, e, &now)
	}

	require.True(t, e.GameOver())
	assert.Zero(t, *lines)
	assert.Equal(t, 11, e.pieces, "ten O pieces fill the column, the eleventh cannot spawn")
}

func TestSingleLineClear(t *testing.T) {
	e, _, lines := newTestEngine(t, int(KindO), 0)
	e.board[19] = FullRow &^ 0x030
	e.board[18] = 0x200
	e.board[17] = 0x001

	var now uint32
	dropUntilLanded(t, e, &now)

	assert.Equal(t, uint32(1), *lines)
	b := e.Board()
	assert.Equal(t, uint32(0x230), b[19], "row above the cleared row moves down")
	assert.Equal(t, uint32(0x001), b[18])
	for y := 0; y < 18; y++ {
		assert.Zero(t, b[y], "row %d", y)
	}
}

func TestDoubleLineClear(t *testing.T) {
	e, _, lines := newTestEngine(t, int(KindO), 0)
	e.board[19] = FullRow &^ 0x030
	e.board[18] = FullRow &^ 0x030
	e.board[17] = 0x001

	var now uint32
	dropUntilLanded(t, e, &now)

	assert.Equal(t, uint32(2), *lines)
	b := e.Board()
	assert.Equal(t, uint32(0x001), b[19])
	for y := 0; y < 19; y++ {
		assert.Zero(t, b[y], "row %d", y)
	}
}

func TestRotateIntoWallRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindI), 1)
	e.SetFallDelay(noGravity)
	e.pose = Pose{Col: -2, Row: 5, Rot: 1}
	b := e.Board()
	require.True(t, b.Fits(KindI, e.pose))

	e.Step(KeyUp, 10)

	_, pose := e.Active()
	assert.Equal(t, Pose{Col: -2, Row: 5, Rot: 1}, pose)
}

func TestRotateIntoFilledCellRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindT), 0)
	e.SetFallDelay(noGravity)
	e.pose = Pose{Col: 3, Row: 5, Rot: 0}
	e.board.Fill(4, 7)

	e.Step(KeyUp, 10)
	_, pose := e.Active()
	assert.Equal(t, Pose{Col: 3, Row: 5, Rot: 0}, pose)

	e.board.Clear()
	e.Step(0, 20)
	e.Step(KeyUp, 30)
	_, pose = e.Active()
	assert.Equal(t, Pose{Col: 3, Row: 5, Rot: 1}, pose)
}

func TestCombinedMoveIsAllOrNothing(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindO), 0)
	e.SetFallDelay(noGravity)
	e.pose = Pose{Col: -1, Row: 5}

	// left is blocked by the wall, so the down component is discarded too
	e.Step(KeyLeft|KeyDown, 10)

	_, pose := e.Active()
	assert.Equal(t, Pose{Col: -1, Row: 5}, pose)
}

func TestAutoRepeatHorizontal(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindO), 0)
	e.SetFallDelay(noGravity)
	e.pose = Pose{Col: 6, Row: 5}

	steps := []struct {
		now  uint32
		mask Mask
		col  int
	}{
		{100, KeyLeft, 5}, // press fires at once
		{200, KeyLeft, 5},
		{300, KeyLeft, 5}, // deadline is exclusive
		{301, KeyLeft, 4}, // slow delay elapsed
		{350, KeyLeft, 4},
		{401, KeyLeft, 4},
		{402, KeyLeft, 3}, // fast interval
		{410, 0, 3},       // release
		{420, KeyLeft, 2}, // re-press fires at once
		{500, KeyLeft, 2},
		{620, KeyLeft, 2},
		{621, KeyLeft, 1}, // slow delay again
	}

	for i, s := range steps {
		e.Step(s.mask, s.now)
		_, pose := e.Active()
		assert.Equal(t, s.col, pose.Col, "step %d at t=%d", i, s.now)
	}
}

func TestAutoRepeatSoftDropIsRapid(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindO), 0)
	e.SetFallDelay(noGravity)

	steps := []struct {
		now uint32
		row int
	}{
		{1000, 1},
		{1200, 1},
		{1201, 2},
		{1241, 2},
		{1242, 3},
		{1283, 4},
	}

	for i, s := range steps {
		e.Step(KeyDown, s.now)
		_, pose := e.Active()
		assert.Equal(t, s.row, pose.Row, "step %d at t=%d", i, s.now)
	}
}

func TestAutoRepeatKeysAreIndependent(t *testing.T) {
	e, _, _ := newTestEngine(t, int(KindO), 0)
	e.SetFallDelay(noGravity)
	e.pose = Pose{Col: 3, Row: 2}

	e.Step(KeyLeft, 100)
	assert.Equal(t, 2, e.pose.Col)

	// right fires on its own edge while left is still held
	e.Step(KeyLeft|KeyRight, 150)
	assert.Equal(t, 3, e.pose.Col)

	// each key repeats after its own slow delay: left at 301, right at 351
	e.Step(KeyLeft|KeyRight, 301)
	assert.Equal(t, 2, e.pose.Col)
	e.Step(KeyLeft|KeyRight, 351)
	assert.Equal(t, 3, e.pose.Col)
}

func TestGameOverFreezes(t *testing.T) {
	e, fb, _ := newTestEngine(t, int(KindO), 0)
	e.Step(0, 1)
	e.over = true
	before := e.Snapshot()
	fbBefore := *fb

	e.Step(KeyLeft|KeyDown, 5000)
	e.Step(KeyUp, 10000)

	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, fbBefore, *fb)
}

func TestResetContinuesStep(t *testing.T) {
	e, _, lines := newTestEngine(t, int(KindO), 0)
	e.SetFallDelay(noGravity)
	e.over = true
	*lines = 3

	e.Step(KeyReset|KeyLeft, 10)

	assert.False(t, e.GameOver())
	assert.Zero(t, *lines)
	_, pose := e.Active()
	assert.Equal(t, SpawnCol-1, pose.Col, "movement is processed in the same step as the reset")
}

func TestRenderOverlaysPieceWithoutMerging(t *testing.T) {
	e, fb, _ := newTestEngine(t, int(KindO), 0)
	fb[FieldTop+4] |= 0x80000001
	e.board[19] = 0x201

	e.Step(0, 1)

	assert.Equal(t, WallRow|0x030<<FieldShift, fb[FieldTop])
	assert.Equal(t, WallRow|0x030<<FieldShift, fb[FieldTop+1])
	assert.Equal(t, WallRow|0x80000001, fb[FieldTop+4], "bits outside the field are preserved")
	assert.Equal(t, WallRow|0x201<<FieldShift, fb[FieldTop+19])
	assert.Equal(t, FloorRow, fb[FieldTop+BoardHeight])
	assert.Zero(t, e.board[0], "rendering must not touch the board")
}

func TestTickSamplesSources(t *testing.T) {
	var fb FrameBuffer
	var lines uint32
	now := uint32(0)
	mask := Mask(0)
	e := New(&fb, &lines,
		ClockFunc(func() uint32 { return now }),
		InputFunc(func() Mask { return mask }),
		WithRandomizer(&scriptedRand{vals: []int{int(KindO), 0}}),
	)
	e.Init()

	now, mask = 10, KeyRight
	e.Tick()
	_, pose := e.Active()
	assert.Equal(t, SpawnCol+1, pose.Col)
	assert.True(t, fb.Lit(FieldTop, 31-FieldShift-9+SpawnCol+2))
}

func TestSeededEnginesAgree(t *testing.T) {
	run := func() Snapshot {
		var fb FrameBuffer
		var lines uint32
		e := New(&fb, &lines, ClockFunc(func() uint32 { return 0 }), InputFunc(func() Mask { return 0 }), WithSeed(42))
		e.Init()
		var now uint32
		for i := 0; i < 500 && !e.GameOver(); i++ {
			now += 1001
			mask := Mask(0)
			if i%7 == 0 {
				mask = KeyLeft
			}
			if i%11 == 0 {
				mask |= KeyUp
			}
			e.Step(mask, now)
		}
		return e.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "none", Mask(0).String())
	assert.Equal(t, "left|down", (KeyLeft | KeyDown).String())
	assert.Equal(t, "reset", (KeyReset | 1<<9).String())
}
