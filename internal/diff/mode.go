package diff

import "fmt"

// Mode selects which direction of change is applied
type Mode string

const (
	ModeAdditive    Mode = "additive-only"
	ModeDestructive Mode = "destructive-only"
	ModeBoth        Mode = "both"
)

// Modes lists the accepted mode values
var Modes = []Mode{ModeAdditive, ModeDestructive, ModeBoth}

// Gates holds the two independent change-direction switches
type Gates struct {
	Additive    bool
	Destructive bool
}

// ParseMode parses a mode name as given on the command line
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid mode %q (expected one of %s, %s, %s)", s, ModeAdditive, ModeDestructive, ModeBoth)
}

// Gates maps the mode to its change-direction switches
func (m Mode) Gates() Gates {
	switch m {
	case ModeAdditive:
		return Gates{Additive: true}
	case ModeDestructive:
		return Gates{Destructive: true}
	case ModeBoth:
		return Gates{Additive: true, Destructive: true}
	default:
		return Gates{}
	}
}
