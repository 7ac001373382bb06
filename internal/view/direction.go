package view

// Direction is one of the nine movement directions.
type Direction uint8

const (
	Stop Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var (
	dx = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	dy = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}
)

// Delta returns the unit displacement of d.
func (d Direction) Delta() (int, int) {
	if d > NorthWest {
		return 0, 0
	}
	return dx[d], dy[d]
}

var quantized = [9]Direction{
	NorthWest, North, NorthEast,
	West, Stop, East,
	SouthWest, South, SouthEast,
}

func axis(delta, step int) int {
	switch {
	case -step >= delta:
		return 0
	case step <= delta:
		return 2
	}
	return 1
}

// Quantize returns the direction from (x, y) towards (tx, ty). Each
// axis counts as no movement while the distance is within step.
func Quantize(x, y, tx, ty, step int) Direction {
	return quantized[axis(tx-x, step)+3*axis(ty-y, step)]
}
