package engine

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of distinct tetromino shapes.
const KindCount = 7

// RotationCount is the number of rotation states per shape.
const RotationCount = 4

// shapes holds the 4x4 occupancy pattern for every kind and rotation.
// Rows are packed top to bottom, 4 bits each; the MSB is the top-left cell.
var shapes = [KindCount][RotationCount]uint16{
	KindI: {0x0F00, 0x2222, 0x00F0, 0x4444},
	KindJ: {0x8E00, 0x6440, 0x0E20, 0x44C0},
	KindL: {0x2E00, 0x4460, 0x0E80, 0xC440},
	KindO: {0x6600, 0x6600, 0x6600, 0x6600},
	KindS: {0x6C00, 0x4620, 0x06C0, 0x8C40},
	KindT: {0x4E00, 0x4640, 0x0E40, 0x4C40},
	KindZ: {0xC600, 0x2640, 0x0C60, 0x4C80},
}

// spawnRows is the board row of the bounding box top at spawn.
// Rotations whose first pattern row is empty start higher so the
// visible cells appear at the top of the field.
var spawnRows = [KindCount][RotationCount]int{
	KindI: {-1, 0, -2, 0},
	KindJ: {0, 0, -1, 0},
	KindL: {0, 0, -1, 0},
	KindO: {0, 0, 0, 0},
	KindS: {0, 0, -1, 0},
	KindT: {0, 0, -1, 0},
	KindZ: {0, 0, -1, 0},
}

// Piece is a tetromino kind together with a rotation state.
type Piece struct {
	Kind     Kind
	Rotation int
}

// Shape returns the 4x4 occupancy pattern for the given kind and rotation.
func Shape(k Kind, rot int) uint16 {
	return shapes[k][rot&3]
}

// SpawnRow returns the spawn row offset for the given kind and rotation.
func SpawnRow(k Kind, rot int) int {
	return spawnRows[k][rot&3]
}

// Index returns the flat catalog index (kind*4 + rotation).
func (p Piece) Index() int {
	return int(p.Kind)*RotationCount + p.Rotation
}

// Shape returns the occupancy pattern of the piece.
func (p Piece) Shape() uint16 {
	return Shape(p.Kind, p.Rotation)
}

// shapeRow extracts row r (0 = top) of a pattern as a 4-bit nibble,
// bit 3 being the leftmost cell.
func shapeRow(pattern uint16, r int) uint32 {
	return uint32(pattern>>(12-4*r)) & 0xF
}

// String returns the letter name of the shape.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}
