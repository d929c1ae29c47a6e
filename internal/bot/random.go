package bot

import (
	"context"
	"math/rand"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/rocketscienceinc/xando/internal/entity"
)

type random struct{}

func NewRandom() Strategy {
	return &random{}
}

func (that *random) ChooseCell(_ context.Context, board entity.Board, _ entity.Mark) (entity.Cell, error) {
	availableCells := board.AvailableSpaces()
	if len(availableCells) == 0 {
		return entity.Cell{}, apperror.ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}
