package entity

import (
	"testing"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayerWithMark(mark Mark) *Player {
	player := NewPlayer()
	player.SetMark(mark)
	return player
}

// newStartedGame returns a playing game where X moves first.
func newStartedGame(t *testing.T) *Game {
	t.Helper()

	game := NewGame(NewBoard(), false)
	require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))
	require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))
	require.NoError(t, game.Start())

	return game
}

func playAll(t *testing.T, game *Game, cells ...Cell) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, game.Play(cell))
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Without bot", func(t *testing.T) {
		game := NewGame(NewBoard(), false)

		assert.NotEmpty(t, game.ID)
		assert.Equal(t, StatusCreating, game.Status)
		assert.Equal(t, TurnFirst, game.Turn)
		assert.Empty(t, game.Players)
		assert.False(t, game.WithBot)
	})

	t.Run("With bot reserves an unmarked seat", func(t *testing.T) {
		game := NewGame(NewBoard(), true)

		require.Len(t, game.Players, 1)
		assert.True(t, game.Players[0].IsBot())
		assert.False(t, game.Players[0].HasMark())
		assert.True(t, game.WithBot)
	})
}

func TestGame_AddPlayer(t *testing.T) {
	// Given: a game with two players
	game := NewGame(NewBoard(), false)
	require.NoError(t, game.AddPlayer(NewPlayer()))
	require.NoError(t, game.AddPlayer(NewPlayer()))

	// When: a third player is added
	err := game.AddPlayer(NewPlayer())

	// Then: ErrPlayerListFull is returned and the list is unchanged
	require.ErrorIs(t, err, apperror.ErrPlayerListFull)
	assert.Len(t, game.Players, 2)
}

func TestGame_AvailableMarks(t *testing.T) {
	t.Run("No players", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		assert.Equal(t, []Mark{MarkX, MarkO}, game.AvailableMarks())
	})

	t.Run("One unmarked player", func(t *testing.T) {
		game := NewGame(NewBoard(), true)
		assert.Equal(t, []Mark{MarkX, MarkO}, game.AvailableMarks())
	})

	t.Run("One player holding O", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))
		assert.Equal(t, []Mark{MarkX}, game.AvailableMarks())
	})

	t.Run("Second player holding X", func(t *testing.T) {
		game := NewGame(NewBoard(), true)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))
		assert.Equal(t, []Mark{MarkO}, game.AvailableMarks())
	})

	t.Run("Both marks taken", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))
		assert.Empty(t, game.AvailableMarks())
	})
}

func TestGame_PlayerWithNoMark(t *testing.T) {
	t.Run("Finds the bot seat", func(t *testing.T) {
		game := NewGame(NewBoard(), true)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))

		idx, ok := game.PlayerWithNoMark()
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	})

	t.Run("None when everyone has a mark", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))

		idx, ok := game.PlayerWithNoMark()
		assert.False(t, ok)
		assert.Equal(t, 0, idx)
	})
}

func TestGame_AssignRemainingMark(t *testing.T) {
	t.Run("Gives the bot the complement", func(t *testing.T) {
		// Given: a bot game where the human picked O
		game := NewGame(NewBoard(), true)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))

		// When: the remaining mark is assigned
		require.NoError(t, game.AssignRemainingMark())

		// Then: the bot holds X and nothing is left
		assert.Equal(t, MarkX, game.Players[0].Mark)
		assert.Empty(t, game.AvailableMarks())
	})

	t.Run("No unmarked player is a no-op", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))

		require.NoError(t, game.AssignRemainingMark())
		assert.Equal(t, []Mark{MarkO}, game.AvailableMarks())
	})

	t.Run("No marks left", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		game.Players = []*Player{newPlayerWithMark(MarkX), newPlayerWithMark(MarkO), NewPlayer()}

		assert.ErrorIs(t, game.AssignRemainingMark(), apperror.ErrNoMarksAvailable)
	})
}

func TestGame_Start(t *testing.T) {
	t.Run("Succeeds exactly once", func(t *testing.T) {
		// Given: a game with two marked players
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))

		// When: starting twice
		first := game.Start()
		second := game.Start()

		// Then: only the first call succeeds
		require.NoError(t, first)
		require.ErrorIs(t, second, apperror.ErrGameNotReady)
		assert.Equal(t, StatusPlaying, game.Status)
	})

	t.Run("Fails with fewer than two players", func(t *testing.T) {
		game := NewGame(NewBoard(), true)

		err := game.Start()

		require.ErrorIs(t, err, apperror.ErrGameNotReady)
		assert.Equal(t, StatusCreating, game.Status)
	})

	t.Run("Fails when a player has no mark", func(t *testing.T) {
		game := NewGame(NewBoard(), true)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))

		err := game.Start()

		require.ErrorIs(t, err, apperror.ErrGameNotReady)
		assert.ErrorIs(t, err, apperror.ErrNoMarkAssigned)
		assert.Equal(t, StatusCreating, game.Status)
	})

	t.Run("Fails on finished game", func(t *testing.T) {
		game := newStartedGame(t)
		game.Status = StatusFinished

		err := game.Start()

		require.ErrorIs(t, err, apperror.ErrGameNotReady)
		assert.Equal(t, StatusFinished, game.Status)
	})

	t.Run("Fails on unknown status", func(t *testing.T) {
		game := &Game{Status: "unknown", Board: NewBoard()}

		err := game.Start()

		require.ErrorIs(t, err, apperror.ErrUnknownGameStatus)
		require.ErrorIs(t, err, apperror.ErrGameNotReady)
	})
}

func TestGame_ConfirmPlayingState(t *testing.T) {
	testCases := []struct {
		status Status
		err    error
	}{
		{StatusPlaying, nil},
		{StatusCreating, apperror.ErrGameIsNotStarted},
		{StatusFinished, apperror.ErrGameFinished},
		{StatusDraw, apperror.ErrGameFinished},
		{"unknown", apperror.ErrUnknownGameStatus},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			game := &Game{Status: tc.status}

			err := game.ConfirmPlayingState()

			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGame_Play(t *testing.T) {
	t.Run("Places mark and passes the turn", func(t *testing.T) {
		game := newStartedGame(t)

		require.NoError(t, game.Play(Cell{2, 2}))

		mark, err := game.Board.At(Cell{2, 2})
		require.NoError(t, err)
		assert.Equal(t, MarkX, mark)
		assert.Equal(t, TurnSecond, game.Turn)
		assert.Equal(t, MarkO, game.CurrentPlayer().Mark)
		assert.Equal(t, StatusPlaying, game.Status)
	})

	t.Run("Top row wins for X", func(t *testing.T) {
		// Given: a started game
		game := newStartedGame(t)

		// When: X plays the top row while O plays elsewhere
		playAll(t, game, Cell{1, 1}, Cell{2, 1}, Cell{1, 2}, Cell{2, 2}, Cell{1, 3})

		// Then: the game is finished and X's player wins
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, MarkX, game.WinnerMark)
		winner, ok := game.Winner()
		require.True(t, ok)
		assert.Same(t, game.Players[0], winner)
		assert.Equal(t, TurnFirst, game.Turn)
	})

	t.Run("Win after more than three marks", func(t *testing.T) {
		// Given: X holds four cells without a complete line
		game := newStartedGame(t)
		playAll(t, game,
			Cell{1, 1}, Cell{1, 2},
			Cell{2, 3}, Cell{2, 2},
			Cell{3, 2}, Cell{1, 3},
			Cell{3, 1}, Cell{2, 1},
		)
		require.Equal(t, StatusPlaying, game.Status)
		require.Len(t, game.Board.EntriesFor(MarkX), 4)

		// When: X completes the bottom row with its fifth mark
		require.NoError(t, game.Play(Cell{3, 3}))

		// Then: X wins
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, MarkX, game.WinnerMark)
	})

	t.Run("Diagonal wins for O", func(t *testing.T) {
		game := newStartedGame(t)

		playAll(t, game, Cell{1, 1}, Cell{1, 3}, Cell{1, 2}, Cell{2, 2}, Cell{3, 3}, Cell{3, 1})

		assert.Equal(t, StatusFinished, game.Status)
		winner, ok := game.Winner()
		require.True(t, ok)
		assert.Equal(t, MarkO, winner.Mark)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a started game
		game := newStartedGame(t)

		// When: the board fills up with no complete line
		// X O X
		// X O O
		// O X X
		playAll(t, game,
			Cell{1, 1}, Cell{1, 2},
			Cell{1, 3}, Cell{2, 2},
			Cell{2, 1}, Cell{3, 1},
			Cell{3, 2}, Cell{2, 3},
			Cell{3, 3},
		)

		// Then: the game ends in a draw without a winner
		assert.Equal(t, StatusDraw, game.Status)
		assert.True(t, game.IsOver())
		_, ok := game.Winner()
		assert.False(t, ok)
		assert.Equal(t, MarkNone, game.WinnerMark)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds the centre
		game := newStartedGame(t)
		require.NoError(t, game.Play(Cell{2, 2}))
		before := *game.Board

		// When: O plays the same cell
		err := game.Play(Cell{2, 2})

		// Then: ErrCellOccupied and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *game.Board)
		assert.Equal(t, TurnSecond, game.Turn)
	})

	t.Run("Error on cell out of range", func(t *testing.T) {
		game := newStartedGame(t)

		for _, cell := range []Cell{{0, 0}, {4, 2}, {2, 4}, {-1, 1}} {
			assert.ErrorIs(t, game.Play(cell), apperror.ErrInvalidCell)
		}
		assert.Len(t, game.Board.AvailableSpaces(), 9)
		assert.Equal(t, TurnFirst, game.Turn)
	})

	t.Run("Error before start", func(t *testing.T) {
		game := NewGame(NewBoard(), false)
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkX)))
		require.NoError(t, game.AddPlayer(newPlayerWithMark(MarkO)))

		err := game.Play(Cell{1, 1})

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Len(t, game.Board.AvailableSpaces(), 9)
	})

	t.Run("Error after game finished", func(t *testing.T) {
		game := newStartedGame(t)
		playAll(t, game, Cell{1, 1}, Cell{2, 1}, Cell{1, 2}, Cell{2, 2}, Cell{1, 3})

		err := game.Play(Cell{3, 3})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Contains(t, game.Board.AvailableSpaces(), Cell{3, 3})
	})

	t.Run("Error when mover has no mark", func(t *testing.T) {
		game := newStartedGame(t)
		game.Players[0].SetMark(MarkNone)

		err := game.Play(Cell{1, 1})

		require.ErrorIs(t, err, apperror.ErrNoMarkAssigned)
		assert.Len(t, game.Board.AvailableSpaces(), 9)
	})
}
