package entity

import "github.com/google/uuid"

type Player struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark,omitempty"`
	Bot  bool   `json:"bot,omitempty"`
}

func NewPlayer() *Player {
	return &Player{ID: uuid.NewString()}
}

// NewBotPlayer creates the reserved second seat. It has no strategy of its own.
func NewBotPlayer() *Player {
	return &Player{ID: uuid.NewString(), Bot: true}
}

// SetMark assigns the mark, MarkNone clears it.
func (that *Player) SetMark(mark Mark) {
	that.Mark = mark
}

func (that *Player) HasMark() bool {
	return that.Mark.IsSet()
}

func (that *Player) IsBot() bool {
	return that.Bot
}
