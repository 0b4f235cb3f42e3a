package ftcapi

import (
	"strings"
	"time"

	"github.com/ftcstats/ftcstats/internal/usecase"
)

type eventsEnvelope struct {
	Events []apiEvent `json:"events"`
}

type matchesEnvelope struct {
	Matches []apiMatch `json:"matches"`
}

type scoresEnvelope struct {
	MatchScores []apiScoreItem `json:"matchScores"`
}

type apiEvent struct {
	EventID       string   `json:"eventId"`
	Code          string   `json:"code"`
	DivisionCode  string   `json:"divisionCode"`
	Name          string   `json:"name"`
	Remote        bool     `json:"remote"`
	Hybrid        bool     `json:"hybrid"`
	FieldCount    int      `json:"fieldCount"`
	Published     bool     `json:"published"`
	Type          string   `json:"type"`
	TypeName      string   `json:"typeName"`
	RegionCode    string   `json:"regionCode"`
	LeagueCode    string   `json:"leagueCode"`
	DistrictCode  string   `json:"districtCode"`
	Venue         string   `json:"venue"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	StateProv     string   `json:"stateprov"`
	Country       string   `json:"country"`
	Website       string   `json:"website"`
	LiveStreamURL string   `json:"liveStreamUrl"`
	Webcasts      []string `json:"webcasts"`
	Timezone      string   `json:"timezone"`
	DateStart     string   `json:"dateStart"`
	DateEnd       string   `json:"dateEnd"`
}

type apiMatch struct {
	Description     string         `json:"description"`
	TournamentLevel string         `json:"tournamentLevel"`
	Series          int            `json:"series"`
	MatchNumber     int            `json:"matchNumber"`
	StartTime       string         `json:"startTime"`
	ActualStartTime string         `json:"actualStartTime"`
	PostResultTime  string         `json:"postResultTime"`
	Teams           []apiMatchTeam `json:"teams"`
}

type apiMatchTeam struct {
	TeamNumber int    `json:"teamNumber"`
	Station    string `json:"station"`
	Surrogate  bool   `json:"surrogate"`
	NoShow     bool   `json:"noShow"`
	DQ         bool   `json:"dq"`
	OnField    bool   `json:"onField"`
}

// apiScoreItem is the superset of the two score payload shapes the API
// serves. A teamNumber marks a remote item; traditional items carry alliances.
type apiScoreItem struct {
	MatchLevel    string              `json:"matchLevel"`
	MatchSeries   int                 `json:"matchSeries"`
	MatchNumber   int                 `json:"matchNumber"`
	TeamNumber    *int                `json:"teamNumber"`
	Randomization int                 `json:"randomization"`
	Alliances     []apiAllianceScores `json:"alliances"`
	Scores        *apiRemoteScoreSet  `json:"scores"`
}

type apiAllianceScores struct {
	Alliance                       string `json:"alliance"`
	BarcodeElement1                string `json:"barcodeElement1"`
	BarcodeElement2                string `json:"barcodeElement2"`
	Carousel                       bool   `json:"carousel"`
	AutoNavigated1                 string `json:"autoNavigated1"`
	AutoNavigated2                 string `json:"autoNavigated2"`
	AutoBonus1                     bool   `json:"autoBonus1"`
	AutoBonus2                     bool   `json:"autoBonus2"`
	AutoStorageFreight             int    `json:"autoStorageFreight"`
	AutoFreight1                   int    `json:"autoFreight1"`
	AutoFreight2                   int    `json:"autoFreight2"`
	AutoFreight3                   int    `json:"autoFreight3"`
	DriverControlledStorageFreight int    `json:"driverControlledStorageFreight"`
	DriverControlledFreight1       int    `json:"driverControlledFreight1"`
	DriverControlledFreight2       int    `json:"driverControlledFreight2"`
	DriverControlledFreight3       int    `json:"driverControlledFreight3"`
	SharedFreight                  int    `json:"sharedFreight"`
	EndgameDelivered               int    `json:"endgameDelivered"`
	AllianceBalanced               bool   `json:"allianceBalanced"`
	SharedUnbalanced               bool   `json:"sharedUnbalanced"`
	EndgameParked1                 string `json:"endgameParked1"`
	EndgameParked2                 string `json:"endgameParked2"`
	Capped                         int    `json:"capped"`
	MinorPenalties                 int    `json:"minorPenalties"`
	MajorPenalties                 int    `json:"majorPenalties"`
}

type apiRemoteScoreSet struct {
	BarcodeElement                 string `json:"barcodeElement"`
	Carousel                       bool   `json:"carousel"`
	AutoNavigated                  string `json:"autoNavigated"`
	AutoBonus                      bool   `json:"autoBonus"`
	AutoStorageFreight             int    `json:"autoStorageFreight"`
	AutoFreight1                   int    `json:"autoFreight1"`
	AutoFreight2                   int    `json:"autoFreight2"`
	AutoFreight3                   int    `json:"autoFreight3"`
	DriverControlledStorageFreight int    `json:"driverControlledStorageFreight"`
	DriverControlledFreight1       int    `json:"driverControlledFreight1"`
	DriverControlledFreight2       int    `json:"driverControlledFreight2"`
	DriverControlledFreight3       int    `json:"driverControlledFreight3"`
	EndgameDelivered               int    `json:"endgameDelivered"`
	AllianceBalanced               bool   `json:"allianceBalanced"`
	EndgameParked                  string `json:"endgameParked"`
	Capped                         int    `json:"capped"`
	MinorPenalties                 int    `json:"minorPenalties"`
	MajorPenalties                 int    `json:"majorPenalties"`
}

func mapEvents(items []apiEvent) []usecase.ExternalEvent {
	out := make([]usecase.ExternalEvent, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalEvent{
			EventID:       item.EventID,
			Code:          item.Code,
			DivisionCode:  item.DivisionCode,
			Name:          item.Name,
			Remote:        item.Remote,
			Hybrid:        item.Hybrid,
			FieldCount:    item.FieldCount,
			Published:     item.Published,
			Type:          item.Type,
			TypeName:      item.TypeName,
			RegionCode:    item.RegionCode,
			LeagueCode:    item.LeagueCode,
			DistrictCode:  item.DistrictCode,
			Venue:         item.Venue,
			Address:       item.Address,
			City:          item.City,
			StateProv:     item.StateProv,
			Country:       item.Country,
			Website:       item.Website,
			LiveStreamURL: item.LiveStreamURL,
			Webcasts:      item.Webcasts,
			Timezone:      item.Timezone,
			DateStart:     parseAPITime(item.DateStart),
			DateEnd:       parseAPITime(item.DateEnd),
		})
	}
	return out
}

func mapMatches(items []apiMatch) []usecase.ExternalMatch {
	out := make([]usecase.ExternalMatch, 0, len(items))
	for _, item := range items {
		teams := make([]usecase.ExternalMatchTeam, 0, len(item.Teams))
		for _, team := range item.Teams {
			teams = append(teams, usecase.ExternalMatchTeam{
				TeamNumber: team.TeamNumber,
				Station:    team.Station,
				Surrogate:  team.Surrogate,
				NoShow:     team.NoShow,
				DQ:         team.DQ,
				OnField:    team.OnField,
			})
		}
		out = append(out, usecase.ExternalMatch{
			Description:     item.Description,
			TournamentLevel: item.TournamentLevel,
			Series:          item.Series,
			MatchNumber:     item.MatchNumber,
			StartTime:       parseAPITime(item.StartTime),
			ActualStartTime: parseAPITime(item.ActualStartTime),
			PostResultTime:  parseAPITime(item.PostResultTime),
			Teams:           teams,
		})
	}
	return out
}

func mapScores(items []apiScoreItem) []usecase.ExternalMatchScores {
	out := make([]usecase.ExternalMatchScores, 0, len(items))
	for _, item := range items {
		if item.TeamNumber != nil {
			remote := usecase.ExternalRemoteScores{
				MatchNumber:   item.MatchNumber,
				TeamNumber:    *item.TeamNumber,
				Randomization: item.Randomization,
			}
			if item.Scores != nil {
				remote.Scores = usecase.ExternalRemoteScoreSet(*item.Scores)
			}
			out = append(out, usecase.ExternalMatchScores{
				Kind:   usecase.ExternalScoresRemote,
				Remote: &remote,
			})
			continue
		}

		alliances := make([]usecase.ExternalAllianceScores, 0, len(item.Alliances))
		for _, alliance := range item.Alliances {
			alliances = append(alliances, usecase.ExternalAllianceScores(alliance))
		}
		out = append(out, usecase.ExternalMatchScores{
			Kind: usecase.ExternalScoresTraditional,
			Traditional: &usecase.ExternalTraditionalScores{
				MatchLevel:    item.MatchLevel,
				MatchSeries:   item.MatchSeries,
				MatchNumber:   item.MatchNumber,
				Randomization: item.Randomization,
				Alliances:     alliances,
			},
		})
	}
	return out
}

var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseAPITime parses the API's loosely formatted timestamps. Empty or
// unparseable input yields nil.
func parseAPITime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
