package recommend

import (
	"fmt"
	"strings"

	"cinematch/internal/services"
)

// Kind classifies a resolved query.
type Kind int

const (
	KindUnresolved Kind = iota
	KindMovie
	KindActor
	KindDirector
	KindSuggestions
)

var kindNames = map[Kind]string{
	KindUnresolved:  "unresolved",
	KindMovie:       "movie",
	KindActor:       "actor",
	KindDirector:    "director",
	KindSuggestions: "suggestions",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Mode selects which lookups a query runs.
type Mode string

const (
	// ModeAuto runs the full title, actor, director, suggestion chain.
	ModeAuto Mode = "auto"
	// ModeActor only searches cast names.
	ModeActor Mode = "actor"
	// ModeDirector only searches director names.
	ModeDirector Mode = "director"
)

// ParseMode accepts auto, movie (an alias of auto), actor and director.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto", "movie":
		return ModeAuto, nil
	case "actor":
		return ModeActor, nil
	case "director":
		return ModeDirector, nil
	default:
		return "", services.Wrap(services.ErrValidation, "recommend", "parse mode",
			fmt.Sprintf("unknown search mode %q (want auto, movie, actor or director)", value), nil)
	}
}
