package bot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/rocketscienceinc/xando/internal/entity"
	lua "github.com/yuin/gopher-lua"
)

const chooseFunc = "choose"

var (
	ErrChooseNotDefined = errors.New("script does not define choose(board, mark)")
	ErrBadScriptResult  = errors.New("script returned an unusable cell")
)

// script runs a Lua function:
//
//	function choose(board, mark) return row, col end
//
// board is a 3x3 table of "X", "O" or "" indexed from 1.
type script struct {
	source string
}

// NewScript - loads a Lua strategy from path.
func NewScript(path string) (Strategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return NewScriptFromSource(string(source))
}

func NewScriptFromSource(source string) (Strategy, error) {
	state := lua.NewState()
	defer state.Close()

	if _, err := loadChoose(state, source); err != nil {
		return nil, err
	}

	return &script{source: source}, nil
}

func (that *script) ChooseCell(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Cell, error) {
	if len(board.AvailableSpaces()) == 0 {
		return entity.Cell{}, apperror.ErrNoAvailableMoves
	}

	state := lua.NewState()
	defer state.Close()
	state.SetContext(ctx)

	choose, err := loadChoose(state, that.source)
	if err != nil {
		return entity.Cell{}, err
	}

	err = state.CallByParam(lua.P{Fn: choose, NRet: 2, Protect: true}, boardTable(state, board), lua.LString(mark))
	if err != nil {
		return entity.Cell{}, fmt.Errorf("failed to call %s: %w", chooseFunc, err)
	}

	row, col := state.Get(-2), state.Get(-1)
	state.Pop(2)

	cell, err := toCell(row, col)
	if err != nil {
		return entity.Cell{}, err
	}

	if current, err := board.At(cell); err != nil || current != entity.MarkNone {
		return entity.Cell{}, fmt.Errorf("%w: %s", ErrBadScriptResult, cell)
	}

	return cell, nil
}

func loadChoose(state *lua.LState, source string) (*lua.LFunction, error) {
	if err := state.DoString(source); err != nil {
		return nil, fmt.Errorf("failed to run script: %w", err)
	}

	choose, ok := state.GetGlobal(chooseFunc).(*lua.LFunction)
	if !ok {
		return nil, ErrChooseNotDefined
	}

	return choose, nil
}

func boardTable(state *lua.LState, board entity.Board) *lua.LTable {
	rows := state.NewTable()
	for _, row := range board.Cells() {
		cells := state.NewTable()
		for _, mark := range row {
			cells.Append(lua.LString(mark))
		}
		rows.Append(cells)
	}

	return rows
}

func toCell(row, col lua.LValue) (entity.Cell, error) {
	r, ok := row.(lua.LNumber)
	if !ok {
		return entity.Cell{}, fmt.Errorf("%w: row %s", ErrBadScriptResult, row.String())
	}

	c, ok := col.(lua.LNumber)
	if !ok {
		return entity.Cell{}, fmt.Errorf("%w: col %s", ErrBadScriptResult, col.String())
	}

	if !isWhole(r) || !isWhole(c) {
		return entity.Cell{}, fmt.Errorf("%w: %s,%s", ErrBadScriptResult, row.String(), col.String())
	}

	return entity.Cell{Row: int(r), Col: int(c)}, nil
}

func isWhole(n lua.LNumber) bool {
	return float64(int(n)) == float64(n)
}
