package bridge

import (
	"fmt"
	"strings"
)

// Vulnerability is the vulnerability state of a board.
type Vulnerability int

const (
	NoneVul Vulnerability = iota
	NorthSouthVul
	EastWestVul
	BothVul
)

func (v Vulnerability) String() string {
	switch v {
	case NorthSouthVul:
		return "NS"
	case EastWestVul:
		return "EW"
	case BothVul:
		return "All"
	default:
		return "None"
	}
}

// IsVulnerable reports whether the given seat's side is vulnerable.
func (v Vulnerability) IsVulnerable(s Seat) bool {
	switch v {
	case NoneVul:
		return false
	case BothVul:
		return true
	case NorthSouthVul:
		return s.Partnership() == NS
	default:
		return s.Partnership() == EW
	}
}

// ParseVulnerability parses a PBN-style vulnerability string.
func ParseVulnerability(s string) (Vulnerability, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "-", "LOVE":
		return NoneVul, nil
	case "NS", "N-S":
		return NorthSouthVul, nil
	case "EW", "E-W":
		return EastWestVul, nil
	case "BOTH", "ALL":
		return BothVul, nil
	default:
		return 0, fmt.Errorf("%w: vulnerability %q", ErrBadDeal, s)
	}
}

// VulnerabilityForBoard returns the vulnerability for a board number
// under the standard 16-board rotation.
func VulnerabilityForBoard(board int) Vulnerability {
	switch (board - 1) % 16 {
	case 0, 7, 10, 13:
		return NoneVul
	case 1, 4, 11, 14:
		return NorthSouthVul
	case 2, 5, 8, 15:
		return EastWestVul
	default:
		return BothVul
	}
}

// DealerForBoard returns the dealer for a board number under the
// standard 4-board rotation.
func DealerForBoard(board int) Seat {
	switch (board - 1) % 4 {
	case 0:
		return North
	case 1:
		return East
	case 2:
		return South
	default:
		return West
	}
}
