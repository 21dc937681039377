package entity

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

type OutcomeKind uint8

const (
	OutcomeInProgress OutcomeKind = iota
	OutcomeWon
	OutcomeDraw
)

// Outcome is one of InProgress, Won(player) or Draw. Its fields are only
// reachable through the constructors, so a winner can never coexist with a draw.
type Outcome struct {
	kind   OutcomeKind
	winner Mark
}

func InProgress() Outcome {
	return Outcome{kind: OutcomeInProgress}
}

// Won panics on an empty mark: a game cannot be won by nobody.
func Won(player Mark) Outcome {
	if player != PlayerX && player != PlayerO {
		panic("entity: outcome winner must be X or O")
	}
	return Outcome{kind: OutcomeWon, winner: player}
}

func Draw() Outcome {
	return Outcome{kind: OutcomeDraw}
}

func (that Outcome) Kind() OutcomeKind {
	return that.kind
}

// Winner returns the winning mark, or EmptyCell unless the outcome is Won.
func (that Outcome) Winner() Mark {
	return that.winner
}

func (that Outcome) IsFinished() bool {
	return that.kind != OutcomeInProgress
}

func (that Outcome) Status() string {
	switch that.kind {
	case OutcomeWon:
		return StatusWon
	case OutcomeDraw:
		return StatusDraw
	default:
		return StatusOngoing
	}
}

// outcomeOf derives the outcome a board implies.
func outcomeOf(board Board) Outcome {
	if winner := board.Winner(); winner != EmptyCell {
		return Won(winner)
	}

	if board.IsFull() {
		return Draw()
	}

	return InProgress()
}
