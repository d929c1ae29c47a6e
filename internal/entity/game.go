package entity

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/xando/internal/apperror"
)

// MaxPlayers is the number of seats in a game.
const MaxPlayers = 2

type Game struct {
	ID         string    `json:"id"`
	Board      *Board    `json:"board"`
	Players    []*Player `json:"players,omitempty"`
	Turn       Turn      `json:"turn"`
	WithBot    bool      `json:"with_bot,omitempty"`
	Status     Status    `json:"status"`
	WinnerMark Mark      `json:"winner,omitempty"`
}

// NewGame creates a game in the creating state. With a bot the reserved seat
// is added right away, so the list starts with one unmarked player.
func NewGame(board *Board, withBot bool) *Game {
	game := &Game{
		ID:      uuid.NewString(),
		Board:   board,
		Players: make([]*Player, 0, MaxPlayers),
		Turn:    TurnFirst,
		WithBot: withBot,
		Status:  StatusCreating,
	}

	if withBot {
		game.Players = append(game.Players, NewBotPlayer())
	}

	return game
}

func (that *Game) AddPlayer(player *Player) error {
	if len(that.Players) >= MaxPlayers {
		return apperror.ErrPlayerListFull
	}

	that.Players = append(that.Players, player)

	return nil
}

// AvailableMarks returns the marks no player holds, X first. An empty result
// means both marks are taken.
func (that *Game) AvailableMarks() []Mark {
	marks := make([]Mark, 0, len(Marks))
	for _, mark := range Marks {
		taken := slices.ContainsFunc(that.Players, func(p *Player) bool {
			return p.Mark == mark
		})
		if !taken {
			marks = append(marks, mark)
		}
	}

	return marks
}

// PlayerWithNoMark returns the index of the first player without a mark.
func (that *Game) PlayerWithNoMark() (int, bool) {
	idx := slices.IndexFunc(that.Players, func(p *Player) bool {
		return !p.HasMark()
	})

	if idx < 0 {
		return 0, false
	}

	return idx, true
}

// AssignRemainingMark gives the first unmarked player the first free mark.
func (that *Game) AssignRemainingMark() error {
	idx, ok := that.PlayerWithNoMark()
	if !ok {
		return nil
	}

	marks := that.AvailableMarks()
	if len(marks) == 0 {
		return apperror.ErrNoMarksAvailable
	}

	that.Players[idx].SetMark(marks[0])

	return nil
}

func (that *Game) Start() error {
	switch {
	case that.IsPlaying():
		return fmt.Errorf("%w: game already started", apperror.ErrGameNotReady)
	case that.IsOver():
		return fmt.Errorf("%w: %w", apperror.ErrGameNotReady, apperror.ErrGameFinished)
	case !that.IsCreating():
		return fmt.Errorf("%w: %w: %s", apperror.ErrGameNotReady, apperror.ErrUnknownGameStatus, that.Status)
	}

	if len(that.Players) != MaxPlayers {
		return fmt.Errorf("%w: %d of %d players", apperror.ErrGameNotReady, len(that.Players), MaxPlayers)
	}

	if len(that.AvailableMarks()) != 0 {
		return fmt.Errorf("%w: %w", apperror.ErrGameNotReady, apperror.ErrNoMarkAssigned)
	}

	that.Status = StatusPlaying

	return nil
}

// Play puts the current player's mark on cell, then either finishes the game
// or passes the turn. A rejected move leaves the game untouched.
func (that *Game) Play(cell Cell) error {
	if err := that.ConfirmPlayingState(); err != nil {
		return err
	}

	current, err := that.Board.At(cell)
	if err != nil {
		return err
	}

	if current != MarkNone {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, cell)
	}

	mark := that.CurrentPlayer().Mark
	if !mark.IsSet() {
		return apperror.ErrNoMarkAssigned
	}

	that.Board.place(cell, mark)
	that.updateGameState(mark)

	return nil
}

func (that *Game) updateGameState(mark Mark) {
	switch {
	case that.Board.HasLine(mark):
		that.WinnerMark = mark
		that.Status = StatusFinished
	case that.Board.IsFull():
		that.Status = StatusDraw
	default:
		that.Turn = that.Turn.Next()
	}
}

func (that *Game) CurrentPlayer() *Player {
	return that.Players[that.Turn.Index()]
}

// Winner returns the player holding the winning mark.
func (that *Game) Winner() (*Player, bool) {
	if !that.IsFinished() {
		return nil, false
	}

	for _, player := range that.Players {
		if player.Mark == that.WinnerMark {
			return player, true
		}
	}

	return nil, false
}

func (that *Game) IsCreating() bool {
	return that.Status == StatusCreating
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// IsOver reports a terminal state: a win or a draw.
func (that *Game) IsOver() bool {
	return that.IsFinished() || that.IsDraw()
}

func (that *Game) ConfirmPlayingState() error {
	switch {
	case that.IsCreating():
		return apperror.ErrGameIsNotStarted
	case that.IsOver():
		return apperror.ErrGameFinished
	case that.IsPlaying():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}
