package entity

import "fmt"

// Mark is the symbol a player puts on the board. MarkNone marks an empty cell
// or a player that has not picked a side yet.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

// Marks lists the playable marks in the order they are offered.
var Marks = [2]Mark{MarkX, MarkO}

func (that Mark) IsSet() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other playable mark. MarkNone has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

// Cell addresses a board position with 1-based row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) Valid() bool {
	return that.Row >= 1 && that.Row <= BoardSize && that.Col >= 1 && that.Col <= BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("%d,%d", that.Row, that.Col)
}

// Turn says which of the two seats moves next.
type Turn int

const (
	TurnFirst Turn = iota
	TurnSecond
)

func (that Turn) Next() Turn {
	if that == TurnFirst {
		return TurnSecond
	}
	return TurnFirst
}

func (that Turn) Index() int {
	return int(that)
}

type Status string

const (
	StatusCreating Status = "creating"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
	StatusDraw     Status = "draw"
)
