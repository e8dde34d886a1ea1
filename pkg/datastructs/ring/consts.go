package ring

import "fmt"

// Side selects an end of the queue relative to the cursor.
type Side int

const (
	// Left is the front of the queue: the cursor itself.
	Left Side = iota
	// Right is the back of the queue: the vertex just before the cursor.
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Direction selects which relation Rotate follows.
type Direction int

const (
	// Forward follows the next relation.
	Forward Direction = iota
	// Backward follows the prev relation.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
