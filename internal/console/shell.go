// Package console is the terminal front end. It turns typed lines into
// calls on the game manager and prints the board after every move.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/rocketscienceinc/xando/internal/entity"
)

var ErrBadInput = errors.New("expected row,col with values from 1 to 3")

type uGame interface {
	CreateGame(ctx context.Context, withBot bool) (*entity.Game, error)
	AddPlayer(ctx context.Context, gameID string, mark entity.Mark) (*entity.Game, *entity.Player, error)
	StartGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell entity.Cell) (*entity.Game, error)
}

type Shell struct {
	logger  *slog.Logger
	uGame   uGame
	withBot bool

	in  *bufio.Scanner
	out io.Writer

	// lines is fed by a single reader goroutine so a blocked read never
	// holds up cancellation.
	lines     chan inputLine
	done      chan struct{}
	startRead sync.Once
	stopRead  sync.Once
}

type inputLine struct {
	text string
	err  error
}

func New(logger *slog.Logger, uGame uGame, withBot bool, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		logger:  logger.With("component", "console"),
		uGame:   uGame,
		withBot: withBot,
		in:      bufio.NewScanner(in),
		out:     out,
		lines:   make(chan inputLine),
		done:    make(chan struct{}),
	}
}

// Run plays one game to the end.
func (that *Shell) Run(ctx context.Context) error {
	defer that.stopRead.Do(func() { close(that.done) })

	that.printf("Welcome to X and O\n")

	game, err := that.uGame.CreateGame(ctx, that.withBot)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	mark, err := that.askMark(ctx, game.AvailableMarks())
	if err != nil {
		return err
	}

	if game, _, err = that.uGame.AddPlayer(ctx, game.ID, mark); err != nil {
		return fmt.Errorf("failed to add player: %w", err)
	}

	if !that.withBot {
		if game, _, err = that.uGame.AddPlayer(ctx, game.ID, entity.MarkNone); err != nil {
			return fmt.Errorf("failed to add second player: %w", err)
		}
		that.printf("Second player plays %s\n", game.Players[1].Mark)
	}

	if game, err = that.uGame.StartGame(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	for !game.IsOver() {
		that.printBoard(game.Board)

		next, err := that.playTurn(ctx, game)
		if err != nil {
			return err
		}
		game = next
	}

	that.printBoard(game.Board)
	that.printResult(game)

	return nil
}

func (that *Shell) askMark(ctx context.Context, marks []entity.Mark) (entity.Mark, error) {
	for {
		that.printf("Pick a mark\n")
		for i, mark := range marks {
			that.printf("%d: %s\n", i+1, mark)
		}

		line, err := that.readLine(ctx)
		if err != nil {
			return entity.MarkNone, err
		}

		choice, err := strconv.Atoi(line)
		if err == nil && choice >= 1 && choice <= len(marks) {
			return marks[choice-1], nil
		}

		that.printf("Please pick one of the listed marks\n")
	}
}

func (that *Shell) playTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	player := game.CurrentPlayer()
	available := game.Board.AvailableSpaces()

	for {
		that.printf("%s to play, enter row,col: ", player.Mark)

		line, err := that.readLine(ctx)
		if err != nil {
			return nil, err
		}

		cell, err := parseCell(line)
		if err != nil {
			that.printf("%v\n", err)
			continue
		}

		if !slices.Contains(available, cell) {
			that.printf("Cell %s is taken\n", cell)
			continue
		}

		next, err := that.uGame.MakeTurn(ctx, game.ID, cell)
		if errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrInvalidCell) {
			that.printf("%v\n", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}

		return next, nil
	}
}

func (that *Shell) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	that.startRead.Do(func() { go that.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return "", fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
		}
		return line.text, line.err
	}
}

// scan forwards input lines until the input ends or Run returns.
func (that *Shell) scan() {
	defer close(that.lines)

	for that.in.Scan() {
		select {
		case that.lines <- inputLine{text: strings.TrimSpace(that.in.Text())}:
		case <-that.done:
			return
		}
	}

	err := fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
	if scanErr := that.in.Err(); scanErr != nil {
		err = fmt.Errorf("failed to read input: %w", scanErr)
	}

	select {
	case that.lines <- inputLine{err: err}:
	case <-that.done:
	}
}

func (that *Shell) printBoard(board *entity.Board) {
	for _, row := range board.Cells() {
		symbols := make([]string, 0, len(row))
		for _, mark := range row {
			if mark == entity.MarkNone {
				symbols = append(symbols, ".")
				continue
			}
			symbols = append(symbols, string(mark))
		}
		that.printf("%s\n", strings.Join(symbols, " | "))
	}
}

func (that *Shell) printResult(game *entity.Game) {
	winner, ok := game.Winner()
	switch {
	case !ok:
		that.printf("It's a draw\n")
	case winner.IsBot():
		that.printf("Bot wins with %s\n", winner.Mark)
	default:
		that.printf("%s wins\n", winner.Mark)
	}
}

func (that *Shell) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// parseCell reads "row,col" with 1-based values.
func parseCell(line string) (entity.Cell, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return entity.Cell{}, ErrBadInput
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Cell{}, ErrBadInput
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Cell{}, ErrBadInput
	}

	cell := entity.Cell{Row: row, Col: col}
	if !cell.Valid() {
		return entity.Cell{}, ErrBadInput
	}

	return cell, nil
}
