package scores2021

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

var ErrUnknownAlliance = errors.New("unknown alliance")

// Alliance identifies which side of a match a score row belongs to. Remote
// matches have a single SOLO row.
type Alliance string

const (
	AllianceRed  Alliance = "RED"
	AllianceBlue Alliance = "BLUE"
	AllianceSolo Alliance = "SOLO"
)

func AllianceFromAPI(apiValue string) (Alliance, error) {
	switch strings.ToUpper(strings.TrimSpace(apiValue)) {
	case "RED":
		return AllianceRed, nil
	case "BLUE":
		return AllianceBlue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlliance, apiValue)
	}
}

// BarcodeElement is the randomized element read during autonomous.
type BarcodeElement int

const (
	BarcodeDuck BarcodeElement = iota
	BarcodeTeamShippingElement
)

func BarcodeElementFromAPI(apiValue string) BarcodeElement {
	if strings.EqualFold(strings.TrimSpace(apiValue), "DUCK") {
		return BarcodeDuck
	}
	return BarcodeTeamShippingElement
}

// AutoNavigation is a robot's end-of-autonomous position. The ordinal indexes
// the points table, so the declaration order must match the upstream enum.
type AutoNavigation int

const (
	AutoNavNone AutoNavigation = iota
	AutoNavInStorage
	AutoNavCompletelyInStorage
	AutoNavInWarehouse
	AutoNavCompletelyInWarehouse
)

func AutoNavigationFromAPI(apiValue string) AutoNavigation {
	switch strings.ToUpper(strings.TrimSpace(apiValue)) {
	case "IN_STORAGE":
		return AutoNavInStorage
	case "COMPLETELY_IN_STORAGE":
		return AutoNavCompletelyInStorage
	case "IN_WAREHOUSE":
		return AutoNavInWarehouse
	case "COMPLETELY_IN_WAREHOUSE":
		return AutoNavCompletelyInWarehouse
	default:
		return AutoNavNone
	}
}

// EndgamePark is a robot's end-of-match parking outcome.
type EndgamePark int

const (
	ParkNone EndgamePark = iota
	ParkInWarehouse
	ParkCompletelyInWarehouse
)

func EndgameParkFromAPI(apiValue string) EndgamePark {
	switch strings.ToUpper(strings.TrimSpace(apiValue)) {
	case "IN_WAREHOUSE":
		return ParkInWarehouse
	case "COMPLETELY_IN_WAREHOUSE":
		return ParkCompletelyInWarehouse
	default:
		return ParkNone
	}
}

// MatchScores holds one alliance's raw game-element inputs for a 2021
// (Freight Frenzy) match together with the point fields derived from them.
// Identity is (Season, EventCode, MatchID, Alliance).
//
// The *2 fields describe the alliance's second robot and are nil for remote
// (single-robot) rows; SharedFreight and SharedUnbalanced only exist on
// traditional fields and are nil for remote rows as well. Derived fields are
// computed exactly once by the constructors and are never written elsewhere:
// recomputing from the same raw inputs always reproduces them.
type MatchScores struct {
	Season    season.Season
	EventCode string
	MatchID   int
	Alliance  Alliance

	Randomization int

	// Raw inputs.
	BarcodeElement                 BarcodeElement
	BarcodeElement2                *BarcodeElement
	AutoCarousel                   bool
	AutoNavigation                 AutoNavigation
	AutoNavigation2                *AutoNavigation
	AutoBonus                      bool
	AutoBonus2                     *bool
	AutoStorageFreight             int
	AutoFreight1                   int
	AutoFreight2                   int
	AutoFreight3                   int
	DriverControlledStorageFreight int
	DriverControlledFreight1       int
	DriverControlledFreight2       int
	DriverControlledFreight3       int
	SharedFreight                  *int
	EndgameDucksDelivered          int
	AllianceBalanced               bool
	SharedUnbalanced               *bool
	EndgamePark                    EndgamePark
	EndgamePark2                   *EndgamePark
	Capped                         int
	MinorPenalties                 int
	MajorPenalties                 int

	// Derived fields. Nil where the raw input they depend on is nil.
	AutoCarouselPoints                int
	AutoNavigationPoints              int
	AutoFreightPoints                 int
	AutoBonusPoints                   int
	DriverControlledAllianceHubPoints int
	DriverControlledSharedHubPoints   *int
	DriverControlledStoragePoints     int
	EndgameDeliveryPoints             int
	AllianceBalancedPoints            int
	SharedUnbalancedPoints            *int
	EndgameParkingPoints              int
	CappingPoints                     int
	AutoPoints                        int
	DriverControlledPoints            int
	EndgamePoints                     int
	PenaltyPoints                     int
	TotalPoints                       int
}
