package scores2021

import (
	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// TraditionalAllianceInput carries one alliance's raw fields from a
// traditional-format score payload.
type TraditionalAllianceInput struct {
	Alliance                       Alliance
	BarcodeElement1                BarcodeElement
	BarcodeElement2                BarcodeElement
	Carousel                       bool
	AutoNavigated1                 AutoNavigation
	AutoNavigated2                 AutoNavigation
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
	EndgameParked1                 EndgamePark
	EndgameParked2                 EndgamePark
	Capped                         int
	MinorPenalties                 int
	MajorPenalties                 int
}

// RemoteInput carries the raw fields of a remote-format score payload.
type RemoteInput struct {
	BarcodeElement                 BarcodeElement
	Carousel                       bool
	AutoNavigated                  AutoNavigation
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
	EndgameParked                  EndgamePark
	Capped                         int
	MinorPenalties                 int
	MajorPenalties                 int
}

// FromTraditional builds one alliance score row from a traditional payload and
// computes every derived field.
func FromTraditional(s season.Season, eventCode string, matchID, randomization int, in TraditionalAllianceInput) MatchScores {
	ms := MatchScores{
		Season:                         s,
		EventCode:                      eventCode,
		MatchID:                        matchID,
		Alliance:                       in.Alliance,
		Randomization:                  randomization,
		BarcodeElement:                 in.BarcodeElement1,
		BarcodeElement2:                ptr(in.BarcodeElement2),
		AutoCarousel:                   in.Carousel,
		AutoNavigation:                 in.AutoNavigated1,
		AutoNavigation2:                ptr(in.AutoNavigated2),
		AutoBonus:                      in.AutoBonus1,
		AutoBonus2:                     ptr(in.AutoBonus2),
		AutoStorageFreight:             in.AutoStorageFreight,
		AutoFreight1:                   in.AutoFreight1,
		AutoFreight2:                   in.AutoFreight2,
		AutoFreight3:                   in.AutoFreight3,
		DriverControlledStorageFreight: in.DriverControlledStorageFreight,
		DriverControlledFreight1:       in.DriverControlledFreight1,
		DriverControlledFreight2:       in.DriverControlledFreight2,
		DriverControlledFreight3:       in.DriverControlledFreight3,
		SharedFreight:                  ptr(in.SharedFreight),
		EndgameDucksDelivered:          in.EndgameDelivered,
		AllianceBalanced:               in.AllianceBalanced,
		SharedUnbalanced:               ptr(in.SharedUnbalanced),
		EndgamePark:                    in.EndgameParked1,
		EndgamePark2:                   ptr(in.EndgameParked2),
		Capped:                         in.Capped,
		MinorPenalties:                 in.MinorPenalties,
		MajorPenalties:                 in.MajorPenalties,
	}
	ms.computeDerived()
	return ms
}

// FromRemote builds the single SOLO score row of a remote match. Second-robot
// and shared-hub fields stay nil: the schema treats them as absent, not zero.
func FromRemote(s season.Season, eventCode string, matchID, randomization int, in RemoteInput) MatchScores {
	ms := MatchScores{
		Season:                         s,
		EventCode:                      eventCode,
		MatchID:                        matchID,
		Alliance:                       AllianceSolo,
		Randomization:                  randomization,
		BarcodeElement:                 in.BarcodeElement,
		AutoCarousel:                   in.Carousel,
		AutoNavigation:                 in.AutoNavigated,
		AutoBonus:                      in.AutoBonus,
		AutoStorageFreight:             in.AutoStorageFreight,
		AutoFreight1:                   in.AutoFreight1,
		AutoFreight2:                   in.AutoFreight2,
		AutoFreight3:                   in.AutoFreight3,
		DriverControlledStorageFreight: in.DriverControlledStorageFreight,
		DriverControlledFreight1:       in.DriverControlledFreight1,
		DriverControlledFreight2:       in.DriverControlledFreight2,
		DriverControlledFreight3:       in.DriverControlledFreight3,
		EndgameDucksDelivered:          in.EndgameDelivered,
		AllianceBalanced:               in.AllianceBalanced,
		EndgamePark:                    in.EndgameParked,
		Capped:                         in.Capped,
		MinorPenalties:                 in.MinorPenalties,
		MajorPenalties:                 in.MajorPenalties,
	}
	ms.computeDerived()
	return ms
}

func ptr[T any](v T) *T {
	return &v
}
