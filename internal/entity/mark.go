package entity

import (
	"errors"
	"fmt"
)

// Mark is the content of a single cell: empty, X or O.
type Mark uint8

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseMark converts the text form ("", "X", "O") back to a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "":
		return EmptyCell, nil
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (m Mark) IsEmpty() bool {
	return m == EmptyCell
}

func (m Mark) MarshalText() ([]byte, error) {
	if m > PlayerO {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMark, m)
	}
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	parsed, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
