package engine

// Playing field dimensions.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// FullRow has every column bit of a board row set.
const FullRow uint32 = 1<<BoardWidth - 1

// Board is the playing field: one word per row, column x stored at bit
// (BoardWidth-1-x). Bits above FullRow are always zero.
type Board [BoardHeight]uint32

// Pose is the placement of the active piece's 4x4 bounding box.
type Pose struct {
	Col int
	Row int
	Rot int
}

// Filled reports whether the cell at (col, row) is occupied.
// Out-of-range cells report false.
func (b *Board) Filled(col, row int) bool {
	if col < 0 || col >= BoardWidth || row < 0 || row >= BoardHeight {
		return false
	}
	return b[row]&(1<<(BoardWidth-1-col)) != 0
}

// Fill marks the cell at (col, row) as occupied. Out-of-range cells are ignored.
func (b *Board) Fill(col, row int) {
	if col < 0 || col >= BoardWidth || row < 0 || row >= BoardHeight {
		return
	}
	b[row] |= 1 << (BoardWidth - 1 - col)
}

// Clear empties every row.
func (b *Board) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// Fits reports whether kind k can occupy pose p: every occupied cell of the
// pattern must be inside the field and over an empty board cell.
func (b *Board) Fits(k Kind, p Pose) bool {
	pattern := Shape(k, p.Rot)
	mask := uint16(0x8000)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if pattern&mask != 0 {
				x := p.Col + c
				y := p.Row + r
				if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
					return false
				}
				if b.Filled(x, y) {
					return false
				}
			}
			mask >>= 1
		}
	}
	return true
}

// Merge ORs the piece cells into the board. Pattern rows that fall outside
// the field vertically are skipped.
func (b *Board) Merge(k Kind, p Pose) {
	pattern := Shape(k, p.Rot)
	for r := 0; r < 4; r++ {
		y := p.Row + r
		if y < 0 || y >= BoardHeight {
			continue
		}
		b[y] |= strip(shapeRow(pattern, r), p.Col)
	}
}

// overlay returns board row y with the piece cells for that row ORed in,
// without modifying the board.
func (b *Board) overlay(k Kind, p Pose, y int) uint32 {
	line := b[y]
	r := y - p.Row
	if r >= 0 && r < 4 {
		line |= strip(shapeRow(Shape(k, p.Rot), r), p.Col)
	}
	return line
}

// ClearLines removes every full row, shifting the rows above it down and
// leaving an empty row on top. It returns the number of rows removed.
func (b *Board) ClearLines() int {
	cleared := 0
	for row := BoardHeight - 1; row >= 0; {
		if b[row]&FullRow != FullRow {
			row--
			continue
		}
		for next := row; next > 0; next-- {
			b[next] = b[next-1] & FullRow
		}
		b[0] = 0
		cleared++
		// re-examine the same index: a new row has moved into it
	}
	return cleared
}

// strip positions a 4-bit pattern row so its leftmost cell lands on board
// column col. Cells pushed outside the field are dropped.
func strip(nibble uint32, col int) uint32 {
	shift := BoardWidth - 4 - col
	if shift >= 0 {
		return (nibble << shift) & FullRow
	}
	return (nibble >> -shift) & FullRow
}
