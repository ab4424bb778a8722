// internal/game/errors.go
package game

import "errors"

// Every condition below is recoverable and caller-local: the dispatcher turns
// it into a reply to the offending connection, never a crash.
var (
	ErrRoomExists         = errors.New("a room with that name already exists")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotStarted     = errors.New("game has not started yet")
	ErrGameFinished       = errors.New("game is already finished")
	ErrTooFewPlayers      = errors.New("at least two players are required to start")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCardNotInHand      = errors.New("that card is not in your hand")
	ErrAlreadyInRoom      = errors.New("you are already in a room")
	ErrNotInRoom          = errors.New("you are not in this room")
)
