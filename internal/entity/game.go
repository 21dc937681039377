package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInconsistentGame = errors.New("inconsistent game state")

// Game is the state of a single round: the board, whose turn it is and the outcome.
// It is mutated only through Reset and ApplyMove.
type Game struct {
	ID string

	board   Board
	next    Mark
	outcome Outcome
}

func NewGame(id string) *Game {
	game := &Game{ID: id}
	game.Reset()

	return game
}

// Reset empties the board and gives the first move back to X.
func (that *Game) Reset() {
	that.board = Board{}
	that.next = PlayerX
	that.outcome = InProgress()
}

func (that *Game) CurrentPlayer() Mark {
	if that.next == PlayerO {
		return PlayerO
	}
	return PlayerX
}

// ApplyMove places the current player's mark on cell. Moves on an occupied
// cell, outside the board or after the game has finished are ignored and
// leave the state untouched. The result reports whether the move was taken.
func (that *Game) ApplyMove(cell int) bool {
	if !InBounds(cell) || that.board[cell] != EmptyCell || that.outcome.IsFinished() {
		return false
	}

	that.board[cell] = that.CurrentPlayer()
	that.next = that.CurrentPlayer().Opponent()

	if winner := that.CalculateWinner(); winner != EmptyCell {
		that.outcome = Won(winner)
		return true
	}

	if that.board.IsFull() {
		that.outcome = Draw()
	}

	return true
}

func (that *Game) CalculateWinner() Mark {
	return that.board.Winner()
}

// Board returns a copy of the cells.
func (that *Game) Board() Board {
	return that.board
}

// Cell returns the mark at index, EmptyCell when index is off the board.
func (that *Game) Cell(index int) Mark {
	if !InBounds(index) {
		return EmptyCell
	}
	return that.board[index]
}

func (that *Game) Outcome() Outcome {
	return that.outcome
}

func (that *Game) Winner() Mark {
	return that.outcome.Winner()
}

func (that *Game) IsDraw() bool {
	return that.outcome.Kind() == OutcomeDraw
}

func (that *Game) IsFinished() bool {
	return that.outcome.IsFinished()
}

func (that *Game) Status() string {
	return that.outcome.Status()
}

type gameSnapshot struct {
	ID         string `json:"id"`
	Board      Board  `json:"board"`
	NextPlayer Mark   `json:"next_player"`
	Status     string `json:"status"`
	Winner     Mark   `json:"winner"`
}

func (that *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameSnapshot{
		ID:         that.ID,
		Board:      that.board,
		NextPlayer: that.CurrentPlayer(),
		Status:     that.outcome.Status(),
		Winner:     that.outcome.Winner(),
	})
}

type gameSnapshotInput struct {
	ID         string `json:"id"`
	Board      []Mark `json:"board"`
	NextPlayer Mark   `json:"next_player"`
	Status     string `json:"status"`
	Winner     Mark   `json:"winner"`
}

// UnmarshalJSON restores a game and refuses snapshots that no sequence of
// legal moves could produce.
func (that *Game) UnmarshalJSON(data []byte) error {
	var snapshot gameSnapshotInput
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal game: %w", err)
	}

	if len(snapshot.Board) != BoardSize {
		return fmt.Errorf("%w: board has %d cells", ErrInconsistentGame, len(snapshot.Board))
	}

	var board Board
	copy(board[:], snapshot.Board)

	outcome := outcomeOf(board)
	if outcome.Status() != snapshot.Status || outcome.Winner() != snapshot.Winner {
		return fmt.Errorf("%w: status %q winner %q for board %v",
			ErrInconsistentGame, snapshot.Status, snapshot.Winner, board)
	}

	if board.hasLine(PlayerX) && board.hasLine(PlayerO) {
		return fmt.Errorf("%w: both players have a line", ErrInconsistentGame)
	}

	var xCount, oCount int
	for _, cell := range board {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		}
	}

	expectedNext := PlayerX
	if xCount == oCount+1 {
		expectedNext = PlayerO
	} else if xCount != oCount {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInconsistentGame, xCount, oCount)
	}

	// the winner made the last move, so X wins with one extra mark and O with equal counts
	if winner := outcome.Winner(); winner != EmptyCell && winner.Opponent() != expectedNext {
		return fmt.Errorf("%w: %s cannot win with %d X marks against %d O marks",
			ErrInconsistentGame, winner, xCount, oCount)
	}

	if snapshot.NextPlayer != expectedNext {
		return fmt.Errorf("%w: next player %q", ErrInconsistentGame, snapshot.NextPlayer)
	}

	that.ID = snapshot.ID
	that.board = board
	that.next = snapshot.NextPlayer
	that.outcome = outcome

	return nil
}
