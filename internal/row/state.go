package row

import (
	"strconv"
	"strings"

	"github.com/iwvelando/lp-bulk/pkg/constants"
)

// State is the display state of a row's scaled fields.
type State int

const (
	// Collapsed hides the scaled fields; nothing is computed.
	Collapsed State = iota
	// Expanded shows scaled fields computed for the current multiplier.
	Expanded
)

func (s State) String() string {
	switch s {
	case Expanded:
		return "expanded"
	default:
		return "collapsed"
	}
}

// ParseMultiplier reads the leading integer of the user's input, so "12 units"
// reads as 12. Missing, non-numeric and values below two collapse the row.
func ParseMultiplier(input string) (int, State) {
	text := strings.TrimSpace(input)

	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, Collapsed
	}

	k, err := strconv.Atoi(text[:end])
	if err != nil || k < constants.MinMultiplier {
		return 0, Collapsed
	}
	return k, Expanded
}
