package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// TournamentLevel orders match phases within an event.
type TournamentLevel int

const (
	LevelQuals TournamentLevel = iota
	LevelSemis
	LevelFinals
)

func (l TournamentLevel) String() string {
	switch l {
	case LevelQuals:
		return "QUALS"
	case LevelSemis:
		return "SEMIS"
	case LevelFinals:
		return "FINALS"
	default:
		return fmt.Sprintf("TournamentLevel(%d)", int(l))
	}
}

// defaultLevelMapping translates the API's tournamentLevel strings. OTHER and
// PLAYOFF are legacy values whose meaning the upstream never documented; the
// mapping for those two is a heuristic and can be overridden through config.
var defaultLevelMapping = map[string]TournamentLevel{
	"QUALIFICATION": LevelQuals,
	"SEMIFINAL":     LevelSemis,
	"FINAL":         LevelFinals,
	"OTHER":         LevelQuals,
	"PLAYOFF":       LevelFinals,
}

// LevelMapper resolves API tournament-level strings to TournamentLevel,
// applying any configured overrides on top of the defaults.
type LevelMapper struct {
	mapping map[string]TournamentLevel
}

func NewLevelMapper(overrides map[string]TournamentLevel) LevelMapper {
	mapping := make(map[string]TournamentLevel, len(defaultLevelMapping)+len(overrides))
	for key, value := range defaultLevelMapping {
		mapping[key] = value
	}
	for key, value := range overrides {
		mapping[strings.ToUpper(strings.TrimSpace(key))] = value
	}
	return LevelMapper{mapping: mapping}
}

func (m LevelMapper) Level(apiValue string) (TournamentLevel, bool) {
	mapping := m.mapping
	if mapping == nil {
		mapping = defaultLevelMapping
	}
	level, ok := mapping[strings.ToUpper(strings.TrimSpace(apiValue))]
	return level, ok
}

// Match is one scheduled (and possibly played) match. ID is the codec-derived
// integer, unique within (Season, EventCode).
type Match struct {
	Season             season.Season
	EventCode          string
	ID                 int
	HasBeenPlayed      bool
	ScheduledStartTime *time.Time
	ActualStartTime    *time.Time
	PostResultTime     *time.Time
	TournamentLevel    TournamentLevel
	Series             int
}

func (m Match) MatchNumber() int {
	return MatchNumberFromID(m.ID)
}

// Description renders the short human label used across the product,
// e.g. Q-12, SF-1-2, F-3.
func (m Match) Description() string {
	switch m.TournamentLevel {
	case LevelSemis:
		return fmt.Sprintf("SF-%d-%d", m.Series, m.MatchNumber())
	case LevelFinals:
		return fmt.Sprintf("F-%d", m.MatchNumber())
	default:
		return fmt.Sprintf("Q-%d", m.MatchNumber())
	}
}
