package entity

const BoardSize = 9

// WinCombos lists every line of three cells in the order they are checked:
// rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds nine cells in row-major order.
type Board [BoardSize]Mark

// Winner returns the mark of the first uniformly marked line, or EmptyCell.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) hasLine(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func InBounds(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
