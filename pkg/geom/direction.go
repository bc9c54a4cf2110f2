package geom

// Direction is one of the four cardinal directions.
// The declaration order is the fixed iteration order used wherever a
// traversal has to break ties.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all four directions in iteration order.
var Directions = [4]Direction{North, East, South, West}

var (
	deltas     = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	opposites  = [4]Direction{South, West, North, East}
	orthogonal = [4][2]Direction{{East, West}, {North, South}, {East, West}, {North, South}}
	dirNames   = [4]string{"north", "east", "south", "west"}
)

// Delta returns the unit offset of d.
func (d Direction) Delta() (dx, dy int) {
	return deltas[d][0], deltas[d][1]
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction { return opposites[d] }

// Orthogonal returns the two directions perpendicular to d, in iteration order.
func (d Direction) Orthogonal() [2]Direction { return orthogonal[d] }

// Horizontal reports whether d is East or West.
func (d Direction) Horizontal() bool { return d == East || d == West }

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool { return d >= North && d <= West }

// String returns the lower-case direction name.
func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return dirNames[d]
}

// ParseDirection is the inverse of [Direction.String].
func ParseDirection(s string) (Direction, bool) {
	for i, name := range dirNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// DirectionTo returns the direction of the single orthogonal step from a to b.
// ok is false when b is not an orthogonal neighbor of a.
func DirectionTo(a, b Point) (d Direction, ok bool) {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return 0, false
}

// Towards returns the cardinal direction pointing from a to b when both lie
// on one row or column. ok is false for equal or non-aligned points.
func Towards(a, b Point) (d Direction, ok bool) {
	switch {
	case a == b:
		return 0, false
	case a.X == b.X && b.Y < a.Y:
		return North, true
	case a.X == b.X:
		return South, true
	case a.Y == b.Y && b.X > a.X:
		return East, true
	case a.Y == b.Y:
		return West, true
	}
	return 0, false
}
