package postgres

import (
	"github.com/ftcstats/ftcstats/internal/domain/scores2021"
)

type scores2021UpsertModel struct {
	Season        int16  `db:"season"`
	EventCode     string `db:"event_code"`
	MatchID       int    `db:"match_id"`
	Alliance      string `db:"alliance"`
	Randomization int    `db:"randomization"`

	BarcodeElement                 int   `db:"barcode_element"`
	BarcodeElement2                *int  `db:"barcode_element2"`
	AutoCarousel                   bool  `db:"auto_carousel"`
	AutoNavigation                 int   `db:"auto_navigation"`
	AutoNavigation2                *int  `db:"auto_navigation2"`
	AutoBonus                      bool  `db:"auto_bonus"`
	AutoBonus2                     *bool `db:"auto_bonus2"`
	AutoStorageFreight             int   `db:"auto_storage_freight"`
	AutoFreight1                   int   `db:"auto_freight1"`
	AutoFreight2                   int   `db:"auto_freight2"`
	AutoFreight3                   int   `db:"auto_freight3"`
	DriverControlledStorageFreight int   `db:"dc_storage_freight"`
	DriverControlledFreight1       int   `db:"dc_freight1"`
	DriverControlledFreight2       int   `db:"dc_freight2"`
	DriverControlledFreight3       int   `db:"dc_freight3"`
	SharedFreight                  *int  `db:"shared_freight"`
	EndgameDucksDelivered          int   `db:"endgame_ducks_delivered"`
	AllianceBalanced               bool  `db:"alliance_balanced"`
	SharedUnbalanced               *bool `db:"shared_unbalanced"`
	EndgamePark                    int   `db:"endgame_park"`
	EndgamePark2                   *int  `db:"endgame_park2"`
	Capped                         int   `db:"capped"`
	MinorPenalties                 int   `db:"minor_penalties"`
	MajorPenalties                 int   `db:"major_penalties"`

	AutoCarouselPoints                int  `db:"auto_carousel_points"`
	AutoNavigationPoints              int  `db:"auto_navigation_points"`
	AutoFreightPoints                 int  `db:"auto_freight_points"`
	AutoBonusPoints                   int  `db:"auto_bonus_points"`
	DriverControlledAllianceHubPoints int  `db:"dc_alliance_hub_points"`
	DriverControlledSharedHubPoints   *int `db:"dc_shared_hub_points"`
	DriverControlledStoragePoints     int  `db:"dc_storage_points"`
	EndgameDeliveryPoints             int  `db:"endgame_delivery_points"`
	AllianceBalancedPoints            int  `db:"alliance_balanced_points"`
	SharedUnbalancedPoints            *int `db:"shared_unbalanced_points"`
	EndgameParkingPoints              int  `db:"endgame_parking_points"`
	CappingPoints                     int  `db:"capping_points"`
	AutoPoints                        int  `db:"auto_points"`
	DriverControlledPoints            int  `db:"dc_points"`
	EndgamePoints                     int  `db:"endgame_points"`
	PenaltyPoints                     int  `db:"penalty_points"`
	TotalPoints                       int  `db:"total_points"`
}

func scores2021ToUpsertModel(ms scores2021.MatchScores) scores2021UpsertModel {
	return scores2021UpsertModel{
		Season:        int16(ms.Season),
		EventCode:     ms.EventCode,
		MatchID:       ms.MatchID,
		Alliance:      string(ms.Alliance),
		Randomization: ms.Randomization,

		BarcodeElement:                 int(ms.BarcodeElement),
		BarcodeElement2:                enumPtrToInt(ms.BarcodeElement2),
		AutoCarousel:                   ms.AutoCarousel,
		AutoNavigation:                 int(ms.AutoNavigation),
		AutoNavigation2:                enumPtrToInt(ms.AutoNavigation2),
		AutoBonus:                      ms.AutoBonus,
		AutoBonus2:                     ms.AutoBonus2,
		AutoStorageFreight:             ms.AutoStorageFreight,
		AutoFreight1:                   ms.AutoFreight1,
		AutoFreight2:                   ms.AutoFreight2,
		AutoFreight3:                   ms.AutoFreight3,
		DriverControlledStorageFreight: ms.DriverControlledStorageFreight,
		DriverControlledFreight1:       ms.DriverControlledFreight1,
		DriverControlledFreight2:       ms.DriverControlledFreight2,
		DriverControlledFreight3:       ms.DriverControlledFreight3,
		SharedFreight:                  ms.SharedFreight,
		EndgameDucksDelivered:          ms.EndgameDucksDelivered,
		AllianceBalanced:               ms.AllianceBalanced,
		SharedUnbalanced:               ms.SharedUnbalanced,
		EndgamePark:                    int(ms.EndgamePark),
		EndgamePark2:                   enumPtrToInt(ms.EndgamePark2),
		Capped:                         ms.Capped,
		MinorPenalties:                 ms.MinorPenalties,
		MajorPenalties:                 ms.MajorPenalties,

		AutoCarouselPoints:                ms.AutoCarouselPoints,
		AutoNavigationPoints:              ms.AutoNavigationPoints,
		AutoFreightPoints:                 ms.AutoFreightPoints,
		AutoBonusPoints:                   ms.AutoBonusPoints,
		DriverControlledAllianceHubPoints: ms.DriverControlledAllianceHubPoints,
		DriverControlledSharedHubPoints:   ms.DriverControlledSharedHubPoints,
		DriverControlledStoragePoints:     ms.DriverControlledStoragePoints,
		EndgameDeliveryPoints:             ms.EndgameDeliveryPoints,
		AllianceBalancedPoints:            ms.AllianceBalancedPoints,
		SharedUnbalancedPoints:            ms.SharedUnbalancedPoints,
		EndgameParkingPoints:              ms.EndgameParkingPoints,
		CappingPoints:                     ms.CappingPoints,
		AutoPoints:                        ms.AutoPoints,
		DriverControlledPoints:            ms.DriverControlledPoints,
		EndgamePoints:                     ms.EndgamePoints,
		PenaltyPoints:                     ms.PenaltyPoints,
		TotalPoints:                       ms.TotalPoints,
	}
}

func enumPtrToInt[T ~int](p *T) *int {
	if p == nil {
		return nil
	}
	v := int(*p)
	return &v
}

const scores2021UpsertSuffix = `ON CONFLICT (season, event_code, match_id, alliance) DO UPDATE SET
    randomization = EXCLUDED.randomization,
    barcode_element = EXCLUDED.barcode_element,
    barcode_element2 = EXCLUDED.barcode_element2,
    auto_carousel = EXCLUDED.auto_carousel,
    auto_navigation = EXCLUDED.auto_navigation,
    auto_navigation2 = EXCLUDED.auto_navigation2,
    auto_bonus = EXCLUDED.auto_bonus,
    auto_bonus2 = EXCLUDED.auto_bonus2,
    auto_storage_freight = EXCLUDED.auto_storage_freight,
    auto_freight1 = EXCLUDED.auto_freight1,
    auto_freight2 = EXCLUDED.auto_freight2,
    auto_freight3 = EXCLUDED.auto_freight3,
    dc_storage_freight = EXCLUDED.dc_storage_freight,
    dc_freight1 = EXCLUDED.dc_freight1,
    dc_freight2 = EXCLUDED.dc_freight2,
    dc_freight3 = EXCLUDED.dc_freight3,
    shared_freight = EXCLUDED.shared_freight,
    endgame_ducks_delivered = EXCLUDED.endgame_ducks_delivered,
    alliance_balanced = EXCLUDED.alliance_balanced,
    shared_unbalanced = EXCLUDED.shared_unbalanced,
    endgame_park = EXCLUDED.endgame_park,
    endgame_park2 = EXCLUDED.endgame_park2,
    capped = EXCLUDED.capped,
    minor_penalties = EXCLUDED.minor_penalties,
    major_penalties = EXCLUDED.major_penalties,
    auto_carousel_points = EXCLUDED.auto_carousel_points,
    auto_navigation_points = EXCLUDED.auto_navigation_points,
    auto_freight_points = EXCLUDED.auto_freight_points,
    auto_bonus_points = EXCLUDED.auto_bonus_points,
    dc_alliance_hub_points = EXCLUDED.dc_alliance_hub_points,
    dc_shared_hub_points = EXCLUDED.dc_shared_hub_points,
    dc_storage_points = EXCLUDED.dc_storage_points,
    endgame_delivery_points = EXCLUDED.endgame_delivery_points,
    alliance_balanced_points = EXCLUDED.alliance_balanced_points,
    shared_unbalanced_points = EXCLUDED.shared_unbalanced_points,
    endgame_parking_points = EXCLUDED.endgame_parking_points,
    capping_points = EXCLUDED.capping_points,
    auto_points = EXCLUDED.auto_points,
    dc_points = EXCLUDED.dc_points,
    endgame_points = EXCLUDED.endgame_points,
    penalty_points = EXCLUDED.penalty_points,
    total_points = EXCLUDED.total_points,
    updated_at = NOW()`
