package domain

import "strings"

// TapeMove is the motion of the head after a transition has written its symbol.
type TapeMove int

const (
	None TapeMove = iota
	Left
	Right
)

// MoveTokens lists every token accepted by ParseTapeMove (case-insensitive).
var MoveTokens = []string{"L", "LEFT", "R", "RIGHT", "N", "NONE", "0"}

// ParseTapeMove normalizes a motion token such as "r", "Left" or "0".
func ParseTapeMove(token string) (TapeMove, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "L", "LEFT":
		return Left, nil
	case "R", "RIGHT":
		return Right, nil
	case "N", "NONE", "0":
		return None, nil
	}
	return None, &InvalidMoveError{Token: token, Allowed: MoveTokens}
}

// Offset returns the change of the head index caused by the move.
func (m TapeMove) Offset() int {
	switch m {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Short returns the single letter form used by the transition notation.
func (m TapeMove) Short() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "N"
	}
}

func (m TapeMove) String() string {
	switch m {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// MarshalText encodes the move in its short form, e.g. in JSON snapshots.
func (m TapeMove) MarshalText() ([]byte, error) {
	return []byte(m.Short()), nil
}

func (m *TapeMove) UnmarshalText(text []byte) error {
	mv, err := ParseTapeMove(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}
