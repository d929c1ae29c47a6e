package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameNotReady      = errors.New("game is not ready to start")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrPlayerListFull    = errors.New("game already has two players")
	ErrNoMarksAvailable  = errors.New("no marks available")
	ErrNoMarkAssigned    = errors.New("player has no mark assigned")
	ErrMarkUnavailable   = errors.New("mark is already taken")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownGameStatus = errors.New("unknown game status")
)
