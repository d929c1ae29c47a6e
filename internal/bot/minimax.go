package bot

import (
	"context"
	"math"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/rocketscienceinc/xando/internal/entity"
)

// winScore is the value of a win found right away; later wins score lower.
const winScore = 10

type minimax struct{}

// NewMinimax - strategy that searches the whole game tree and never loses.
// Equal moves are resolved in row-major order.
func NewMinimax() Strategy {
	return &minimax{}
}

func (that *minimax) ChooseCell(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Cell, error) {
	if !mark.IsSet() {
		return entity.Cell{}, apperror.ErrNoMarkAssigned
	}

	availableCells := board.AvailableSpaces()
	if len(availableCells) == 0 {
		return entity.Cell{}, apperror.ErrNoAvailableMoves
	}

	bestCell := availableCells[0]
	bestScore := math.MinInt

	for _, cell := range availableCells {
		if err := ctx.Err(); err != nil {
			return entity.Cell{}, err
		}

		next := board
		next.Grid[cell.Row-1][cell.Col-1] = mark

		score := -negamax(&next, mark.Opponent(), 1, -math.MaxInt, math.MaxInt)
		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}

// negamax scores board for the side about to move.
func negamax(board *entity.Board, toMove entity.Mark, depth, alpha, beta int) int {
	if board.HasLine(toMove.Opponent()) {
		return depth - winScore
	}

	availableCells := board.AvailableSpaces()
	if len(availableCells) == 0 {
		return 0
	}

	for _, cell := range availableCells {
		next := *board
		next.Grid[cell.Row-1][cell.Col-1] = toMove

		score := -negamax(&next, toMove.Opponent(), depth+1, -beta, -alpha)
		if score > alpha {
			alpha = score
		}

		if alpha >= beta {
			break
		}
	}

	return alpha
}
