package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadContract indicates a contract, strain, or declarer string could
// not be recognized.
var ErrBadContract = errors.New("bridge: invalid contract")

// Strain is a contract denomination: one of the four suits or no-trump.
type Strain int

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	NoTrump
)

func (s Strain) String() string {
	if s == NoTrump {
		return "NT"
	}
	return Suit(s).String()
}

// TrickValue returns the points per contracted trick. The no-trump
// first-trick premium is handled by Contract.Score.
func (s Strain) TrickValue() int {
	switch s {
	case StrainClubs, StrainDiamonds:
		return 20
	default:
		return 30
	}
}

// Trump returns the trump suit, or false for no-trump.
func (s Strain) Trump() (Suit, bool) {
	if s == NoTrump {
		return 0, false
	}
	return Suit(s), true
}

// Doubling is the doubling state of a contract.
type Doubling int

const (
	Undoubled Doubling = iota
	Doubled
	Redoubled
)

func (d Doubling) String() string {
	switch d {
	case Doubled:
		return "X"
	case Redoubled:
		return "XX"
	default:
		return ""
	}
}

// Contract is a final contract: level, strain, doubling state, and the
// declaring seat.
type Contract struct {
	Level    int
	Strain   Strain
	Doubling Doubling
	Declarer Seat
}

func (c Contract) String() string {
	return fmt.Sprintf("%d%s%s by %s", c.Level, c.Strain, c.Doubling, c.Declarer)
}

// ParseStrain parses a strain name such as "S", "NT", or "NoTrump".
func ParseStrain(s string) (Strain, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CLUBS":
		return StrainClubs, nil
	case "D", "DIAMONDS":
		return StrainDiamonds, nil
	case "H", "HEARTS":
		return StrainHearts, nil
	case "S", "SPADES":
		return StrainSpades, nil
	case "NT", "N", "NOTRUMP", "NO TRUMP":
		return NoTrump, nil
	default:
		return 0, fmt.Errorf("%w: strain %q", ErrBadContract, s)
	}
}

// TrumpFromContract extracts the strain from a raw contract string such
// as "4S", "3NT", or "6HX" without requiring the level or doubling to
// parse. "NT" anywhere, or an "N" with no "S" present, means no-trump;
// otherwise the first suit letter wins.
func TrumpFromContract(contract string) (Strain, error) {
	c := strings.ToUpper(strings.TrimSpace(contract))
	if strings.Contains(c, "NT") || (strings.Contains(c, "N") && !strings.Contains(c, "S")) {
		return NoTrump, nil
	}
	for i := 0; i < len(c); i++ {
		switch c[i] {
		case 'S':
			return StrainSpades, nil
		case 'H':
			return StrainHearts, nil
		case 'D':
			return StrainDiamonds, nil
		case 'C':
			return StrainClubs, nil
		}
	}
	return 0, fmt.Errorf("%w: no strain in %q", ErrBadContract, contract)
}

// ParseContract parses a contract string such as "3NT", "4 S X", or
// "6HXX". Passed-out markers ("PASS", "AP", …) and empty strings are
// rejected; the declarer is not part of the string and defaults to
// North.
func ParseContract(s string) (Contract, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch upper {
	case "", "PASS", "PASSED", "AP", "ALL PASS":
		return Contract{}, fmt.Errorf("%w: %q", ErrBadContract, s)
	}

	parts := strings.Fields(upper)
	level := int(parts[0][0] - '0')
	if level < 1 || level > 7 {
		return Contract{}, fmt.Errorf("%w: level in %q", ErrBadContract, s)
	}

	// The strain may be glued to the level ("3NT") or a separate field
	// ("3 NT"). Doubling markers follow the strain either way.
	var rest string
	if len(parts[0]) > 1 {
		rest = parts[0][1:]
		parts = parts[1:]
	} else if len(parts) > 1 {
		rest = parts[1]
		parts = parts[2:]
	} else {
		return Contract{}, fmt.Errorf("%w: no strain in %q", ErrBadContract, s)
	}

	doubling := Undoubled
	trimDoubling := func(s string) string {
		if strings.HasSuffix(s, "XX") {
			doubling = Redoubled
			return s[:len(s)-2]
		}
		if strings.HasSuffix(s, "X") && !strings.HasSuffix(s, "XX") {
			doubling = Doubled
			return s[:len(s)-1]
		}
		return s
	}
	strainStr := trimDoubling(rest)
	for _, part := range parts {
		switch part {
		case "XX", "REDOUBLED":
			doubling = Redoubled
		case "X", "DOUBLED":
			if doubling == Undoubled {
				doubling = Doubled
			}
		}
	}

	strain, err := ParseStrain(strainStr)
	if err != nil {
		return Contract{}, err
	}
	return Contract{Level: level, Strain: strain, Doubling: doubling, Declarer: North}, nil
}

// ParseResult parses a result string relative to the contract: "=" (or
// "0", "+0") for made exactly, "+N" for overtricks, "-N" for
// undertricks.
func ParseResult(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, fmt.Errorf("%w: empty result", ErrBadContract)
	case "=", "0", "+0":
		return 0, nil
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "+"), "%d", &n); err != nil {
		return 0, fmt.Errorf("%w: result %q", ErrBadContract, s)
	}
	return n, nil
}
