package engine

import "strings"

// Frame buffer geometry. The field occupies bits FieldShift..FieldShift+9 of
// rows FieldTop..FieldTop+19; display column 0 is bit 31.
const (
	FrameRows  = 32
	FrameCols  = 32
	FieldShift = 11
	FieldTop   = 6

	// WallRow draws the left and right walls beside every field row.
	WallRow uint32 = 0x00200400
	// FloorRow draws the floor on the row under the field.
	FloorRow uint32 = 0x003FFC00

	fieldMask = FullRow << FieldShift
)

// FrameBuffer is a 32x32 monochrome bitmap, one word per row.
type FrameBuffer [FrameRows]uint32

// Lit reports whether the pixel at display (row, col) is set.
func (fb *FrameBuffer) Lit(row, col int) bool {
	if row < 0 || row >= FrameRows || col < 0 || col >= FrameCols {
		return false
	}
	return fb[row]&(1<<(FrameCols-1-col)) != 0
}

// InField reports whether display (row, col) lies inside the playing field.
func InField(row, col int) bool {
	left := FrameCols - 1 - (FieldShift + BoardWidth - 1)
	return row >= FieldTop && row < FieldTop+BoardHeight &&
		col >= left && col < left+BoardWidth
}

// String renders the buffer as text, '#' for set pixels and '.' otherwise.
func (fb *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow(FrameRows * (FrameCols + 1))
	for row := 0; row < FrameRows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < FrameCols; col++ {
			if fb.Lit(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// drawBorder writes the walls and floor around the field.
func (fb *FrameBuffer) drawBorder() {
	for y := 0; y < BoardHeight; y++ {
		fb[FieldTop+y] = WallRow
	}
	fb[FieldTop+BoardHeight] = FloorRow
}

// render copies the board, with the active piece overlaid, into the field
// window of the frame buffer. Bits outside the window are preserved.
func (e *Engine) render() {
	for y := 0; y < BoardHeight; y++ {
		line := e.board.overlay(e.kind, e.pose, y)
		row := &e.fb[FieldTop+y]
		*row = *row&^fieldMask | line<<FieldShift
	}
}
