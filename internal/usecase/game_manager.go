package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/xando/internal/apperror"
	"github.com/rocketscienceinc/xando/internal/bot"
	"github.com/rocketscienceinc/xando/internal/entity"
	"github.com/rocketscienceinc/xando/internal/repository"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager drives games from setup to the end. It loads the game for
// every call and saves it back, so callers only hold game IDs.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	strategy bot.Strategy
	fallback bot.Strategy
}

// NewGameManager - strategy plays the bot seat, nil falls back to random moves.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, strategy bot.Strategy) *GameManager {
	if strategy == nil {
		strategy = bot.NewRandom()
	}

	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		strategy: strategy,
		fallback: bot.NewRandom(),
	}
}

func (that *GameManager) CreateGame(ctx context.Context, withBot bool) (*entity.Game, error) {
	game := entity.NewGame(entity.NewBoard(), withBot)

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID, "withBot", withBot)

	return game, nil
}

// AddPlayer seats a human holding mark. MarkNone means any mark will do.
// Once both seats are taken, unmarked players get whatever marks are left.
func (that *GameManager) AddPlayer(ctx context.Context, gameID string, mark entity.Mark) (*entity.Game, *entity.Player, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	if mark.IsSet() && !slices.Contains(game.AvailableMarks(), mark) {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrMarkUnavailable, mark)
	}

	player := entity.NewPlayer()
	player.SetMark(mark)

	if err = game.AddPlayer(player); err != nil {
		return nil, nil, fmt.Errorf("failed to add player: %w", err)
	}

	if len(game.Players) == entity.MaxPlayers {
		for range game.Players {
			if err = game.AssignRemainingMark(); err != nil {
				return nil, nil, fmt.Errorf("failed to assign marks: %w", err)
			}
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, nil, err
	}

	return game, player, nil
}

// StartGame starts play and lets the bot move when it holds the first turn.
func (that *GameManager) StartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.Start(); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if game.CurrentPlayer().IsBot() {
		if err = that.makeBotTurn(ctx, game); err != nil {
			return nil, err
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", game.ID, "firstMark", game.Players[entity.TurnFirst.Index()].Mark)

	return game, nil
}

// MakeTurn plays cell for the human whose turn it is and answers with the
// bot's move when the bot is next. A finished game is removed from the store.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell entity.Cell) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmPlayingState(); err != nil {
		return game, err
	}

	if game.CurrentPlayer().IsBot() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.Play(cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsOver() && game.CurrentPlayer().IsBot() {
		if err = that.makeBotTurn(ctx, game); err != nil {
			return nil, err
		}
	}

	if game.IsOver() {
		that.finishGame(ctx, game)
		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// makeBotTurn plays the strategy's cell. When the strategy fails or picks a
// cell the game rejects, the bot plays a random free cell instead.
func (that *GameManager) makeBotTurn(ctx context.Context, game *entity.Game) error {
	mark := game.CurrentPlayer().Mark

	cell, err := that.playBotCell(ctx, that.strategy, game)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		that.logger.Warn("bot strategy failed, playing a random cell", "gameID", game.ID, "error", err)

		if cell, err = that.playBotCell(ctx, that.fallback, game); err != nil {
			return err
		}
	}

	that.logger.Debug("bot played", "gameID", game.ID, "mark", mark, "cell", cell.String())

	return nil
}

func (that *GameManager) playBotCell(ctx context.Context, strategy bot.Strategy, game *entity.Game) (entity.Cell, error) {
	cell, err := strategy.ChooseCell(ctx, *game.Board, game.CurrentPlayer().Mark)
	if err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to choose cell: %w", err)
	}

	if err = game.Play(cell); err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
	}

	if winner, ok := game.Winner(); ok {
		log.Info("game finished", "winner", winner.Mark, "bot", winner.IsBot())
		return
	}

	log.Info("game finished", "result", game.Status)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
