// Package bot contains the move selection strategies for the bot seat.
// A strategy only suggests a cell; the game applies it.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xando/internal/entity"
)

const (
	RandomStrategy  = "random"
	MinimaxStrategy = "minimax"
	LuaStrategy     = "lua"
)

var ErrUnknownStrategy = errors.New("unknown bot strategy")

type Strategy interface {
	ChooseCell(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Cell, error)
}

// New - builds the strategy registered under name.
func New(name, scriptPath string) (Strategy, error) {
	switch name {
	case RandomStrategy:
		return NewRandom(), nil
	case MinimaxStrategy:
		return NewMinimax(), nil
	case LuaStrategy:
		script, err := NewScript(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load lua strategy: %w", err)
		}
		return script, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
