package season

import "fmt"

// Season identifies a competition year and, with it, the ruleset used to
// score matches from that year.
type Season int16

const (
	Skystone      Season = 2019
	UltimateGoal  Season = 2020
	FreightFrenzy Season = 2021
)

func (s Season) String() string {
	return fmt.Sprintf("%d", int16(s))
}

// HasScoring reports whether a scoring ruleset is implemented for the season.
// Match score payloads from other seasons cannot be expanded and must fail
// the sync cycle.
func HasScoring(s Season) bool {
	return s == FreightFrenzy
}
