package usecase

import (
	"context"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// FTCDataProvider is the upstream results API as the sync services see it.
// A nil since fetches everything; otherwise only rows modified after it.
type FTCDataProvider interface {
	FetchSeasonEvents(ctx context.Context, s season.Season, since *time.Time) ([]ExternalEvent, error)
	FetchEventMatches(ctx context.Context, s season.Season, eventCode string) ([]ExternalMatch, error)
	FetchEventScores(ctx context.Context, s season.Season, eventCode string) ([]ExternalMatchScores, error)
}

// ExternalEvent carries the upstream's event row as-is. Optional fields come
// back as empty strings; normalization to NULL happens during mapping.
type ExternalEvent struct {
	EventID       string
	Code          string
	DivisionCode  string
	Name          string
	Remote        bool
	Hybrid        bool
	FieldCount    int
	Published     bool
	Type          string
	TypeName      string
	RegionCode    string
	LeagueCode    string
	DistrictCode  string
	Venue         string
	Address       string
	City          string
	StateProv     string
	Country       string
	Website       string
	LiveStreamURL string
	Webcasts      []string
	Timezone      string
	DateStart     *time.Time
	DateEnd       *time.Time
}

type ExternalMatch struct {
	Description     string
	TournamentLevel string
	Series          int
	MatchNumber     int
	StartTime       *time.Time
	ActualStartTime *time.Time
	PostResultTime  *time.Time
	Teams           []ExternalMatchTeam
}

type ExternalMatchTeam struct {
	TeamNumber int
	Station    string
	Surrogate  bool
	NoShow     bool
	DQ         bool
	OnField    bool
}

type ExternalScoresKind int

const (
	ExternalScoresTraditional ExternalScoresKind = iota
	ExternalScoresRemote
)

// ExternalMatchScores is one score payload item, classified by the client at
// decode time. Exactly one of Traditional and Remote is set, per Kind.
type ExternalMatchScores struct {
	Kind        ExternalScoresKind
	Traditional *ExternalTraditionalScores
	Remote      *ExternalRemoteScores
}

type ExternalTraditionalScores struct {
	MatchLevel    string
	MatchSeries   int
	MatchNumber   int
	Randomization int
	Alliances     []ExternalAllianceScores
}

type ExternalRemoteScores struct {
	MatchNumber   int
	TeamNumber    int
	Randomization int
	Scores        ExternalRemoteScoreSet
}

type ExternalAllianceScores struct {
	Alliance                       string
	BarcodeElement1                string
	BarcodeElement2                string
	Carousel                       bool
	AutoNavigated1                 string
	AutoNavigated2                 string
	AutoBonus1                     bool
	AutoBonus2                     bool
	AutoStorageFreight             int
	AutoFreight1                   int
	AutoFreight2                   int
	AutoFreight3                   int
	DriverControlledStorageFreight int
	DriverControlledFreight1       int
	DriverControlledFreight2       int
	DriverControlledFreight3       int
	SharedFreight                  int
	EndgameDelivered               int
	AllianceBalanced               bool
	SharedUnbalanced               bool
	EndgameParked1                 string
	EndgameParked2                 string
	Capped                         int
	MinorPenalties                 int
	MajorPenalties                 int
}

type ExternalRemoteScoreSet struct {
	BarcodeElement                 string
	Carousel                       bool
	AutoNavigated                  string
	AutoBonus                      bool
	AutoStorageFreight             int
	AutoFreight1                   int
	AutoFreight2                   int
	AutoFreight3                   int
	DriverControlledStorageFreight int
	DriverControlledFreight1       int
	DriverControlledFreight2       int
	DriverControlledFreight3       int
	EndgameDelivered               int
	AllianceBalanced               bool
	EndgameParked                  string
	Capped                         int
	MinorPenalties                 int
	MajorPenalties                 int
}
