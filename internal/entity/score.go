package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Score holds the win and draw tallies. Its JSON form is the persisted record.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

func (that *Score) AddWin(winner Mark) {
	switch winner {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

func (that *Score) AddDraw() {
	that.Draws++
}

// Validate rejects records that could not have been produced by play.
func (that *Score) Validate() error {
	if that.X < 0 || that.O < 0 || that.Draws < 0 {
		return fmt.Errorf("%w: negative counter in %+v", apperror.ErrMalformedScore, *that)
	}

	return nil
}
