package entity

// Position is a board cell address. Compared by value.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

func (p Position) ManhattanTo(o Position) int {
	return absInt(p.X-o.X) + absInt(p.Y-o.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four cardinal unit vectors. There is no diagonal
// movement anywhere in the model. North is -Y, matching screen coordinates.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

var Directions = [4]Direction{North, South, East, West}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	}
	return East
}

func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case South:
		return "SOUTH"
	case East:
		return "EAST"
	case West:
		return "WEST"
	}
	return "UNKNOWN"
}

// DirectionBetween returns the cardinal direction from a to b when they are
// exactly one cell apart along one axis.
func DirectionBetween(a, b Position) (Direction, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	switch {
	case dx == 0 && dy == -1:
		return North, true
	case dx == 0 && dy == 1:
		return South, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == -1 && dy == 0:
		return West, true
	}
	return North, false
}
