package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// WinCombos lists rows, columns and diagonals in the order they are checked.
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

// Mark is a player symbol occupying a cell, or EmptyCell.
type Mark string

// Opponent returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// TurnForStep derives whose turn it is at a history step: X on even steps, O on odd.
func TurnForStep(step int) Mark {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

type Board [BoardSize]Mark

// Winner returns the mark of the first fully occupied triple in WinCombos,
// or EmptyCell when there is none. It does not assume the board is legal.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsFull reports whether every cell holds a mark.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsPlayable reports whether cell is on the board and still empty.
func (that Board) IsPlayable(cell int) bool {
	if cell < 0 || cell >= BoardSize {
		return false
	}

	return that[cell] == EmptyCell
}

// Move is the board snapshot taken right after a player placed a mark.
type Move struct {
	Board  Board `json:"board"`
	Player Mark  `json:"player"`
}
