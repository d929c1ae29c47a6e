package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/xando/internal/apperror"
)

const BoardSize = 3

// Line is three cells that win the game when held by one mark.
type Line [3]Cell

// winningLines - rows top to bottom, columns left to right, then both diagonals.
var winningLines = [8]Line{
	{{1, 1}, {1, 2}, {1, 3}},
	{{2, 1}, {2, 2}, {2, 3}},
	{{3, 1}, {3, 2}, {3, 3}},
	{{1, 1}, {2, 1}, {3, 1}},
	{{1, 2}, {2, 2}, {3, 2}},
	{{1, 3}, {2, 3}, {3, 3}},
	{{1, 1}, {2, 2}, {3, 3}},
	{{1, 3}, {2, 2}, {3, 1}},
}

// Board is the 3x3 grid. A cell, once marked, keeps its mark.
type Board struct {
	Grid [BoardSize][BoardSize]Mark `json:"grid"`
}

func NewBoard() *Board {
	return &Board{}
}

// AvailableSpaces returns every empty cell in row-major order.
func (that *Board) AvailableSpaces() []Cell {
	return that.EntriesFor(MarkNone)
}

// EntriesFor returns the cells holding mark in row-major order.
func (that *Board) EntriesFor(mark Mark) []Cell {
	cells := make([]Cell, 0, BoardSize*BoardSize)
	for i, row := range that.Grid {
		for j, cell := range row {
			if cell == mark {
				cells = append(cells, Cell{Row: i + 1, Col: j + 1})
			}
		}
	}

	return cells
}

func (that *Board) WinningLines() [8]Line {
	return winningLines
}

func (that *Board) At(cell Cell) (Mark, error) {
	if !cell.Valid() {
		return MarkNone, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, cell)
	}

	return that.Grid[cell.Row-1][cell.Col-1], nil
}

// HasLine reports whether mark holds all three cells of any winning line.
func (that *Board) HasLine(mark Mark) bool {
	entries := that.EntriesFor(mark)
	if len(entries) < len(Line{}) {
		return false
	}

	for _, line := range winningLines {
		if line.coveredBy(entries) {
			return true
		}
	}

	return false
}

func (that Line) coveredBy(cells []Cell) bool {
	for _, cell := range that {
		if !slices.Contains(cells, cell) {
			return false
		}
	}

	return true
}

// Cells returns a copy of the grid for rendering.
func (that *Board) Cells() [BoardSize][BoardSize]Mark {
	return that.Grid
}

func (that *Board) IsFull() bool {
	return len(that.AvailableSpaces()) == 0
}

// Clone returns an independent copy of the board.
func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

// place writes mark without checks; Game.Play validates the cell first.
func (that *Board) place(cell Cell, mark Mark) {
	that.Grid[cell.Row-1][cell.Col-1] = mark
}
