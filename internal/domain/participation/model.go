package participation

import (
	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// Station is a team's physical position within a match. Remote matches have a
// single synthetic SOLO station.
type Station string

const (
	StationRed1  Station = "RED_1"
	StationRed2  Station = "RED_2"
	StationRed3  Station = "RED_3"
	StationBlue1 Station = "BLUE_1"
	StationBlue2 Station = "BLUE_2"
	StationBlue3 Station = "BLUE_3"
	StationSolo  Station = "SOLO"
)

// stationFromAPI maps the API's station strings. Remote schedules report the
// single station as "1".
var stationFromAPI = map[string]Station{
	"Red1":  StationRed1,
	"Red2":  StationRed2,
	"Red3":  StationRed3,
	"Blue1": StationBlue1,
	"Blue2": StationBlue2,
	"Blue3": StationBlue3,
	"1":     StationSolo,
}

func StationFromAPI(apiValue string) (Station, bool) {
	s, ok := stationFromAPI[apiValue]
	return s, ok
}

// Participation records one team's slot on one match.
type Participation struct {
	Season       season.Season
	EventCode    string
	MatchID      int
	TeamNumber   int
	Station      Station
	Surrogate    bool
	NoShow       bool
	Disqualified bool
	OnField      bool
}
