package event

import (
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// Event is one competition event as published by the FTC Events API.
// Identity is (Season, Code); everything else may change between syncs.
type Event struct {
	Season          season.Season
	Code            string
	EventID         string
	DivisionCode    *string
	Name            string
	Remote          bool
	Hybrid          bool
	FieldCount      int
	Published       bool
	Type            int
	RegionCode      *string
	LeagueCode      *string
	DistrictCode    *string
	Venue           *string
	Address         *string
	Country         *string
	StateOrProvince *string
	City            *string
	Website         *string
	LiveStreamURL   *string
	Webcasts        []string
	Timezone        *string
	Start           time.Time
	End             time.Time
}
