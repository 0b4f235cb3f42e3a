package scores2021

// Freight Frenzy point tables, indexed by enum ordinal.
var (
	autoNavigationPointsTable = [...]int{0, 3, 6, 5, 10}
	endgameParkPointsTable    = [...]int{0, 3, 6}
)

const (
	autoCarouselValue       = 10
	autoStorageFreightValue = 2
	autoHubFreightValue     = 6
	autoBonusDuckValue      = 10
	autoBonusTSEValue       = 20
	dcFreight1Value         = 2
	dcFreight2Value         = 4
	dcFreight3Value         = 6
	dcSharedFreightValue    = 4
	dcStorageFreightValue   = 1
	endgameDuckValue        = 6
	allianceBalancedValue   = 10
	sharedUnbalancedValue   = 20
	cappingValue            = 15
	minorPenaltyValue       = -10
	majorPenaltyValue       = -30
)

// computeDerived fills every derived point field from the raw inputs. Nil
// optional inputs yield nil dependent fields but contribute zero to the phase
// sums. Calling it again on the same raw inputs produces identical values.
func (ms *MatchScores) computeDerived() {
	if ms.AutoCarousel {
		ms.AutoCarouselPoints = autoCarouselValue
	} else {
		ms.AutoCarouselPoints = 0
	}

	ms.AutoNavigationPoints = autoNavigationPointsTable[ms.AutoNavigation]
	if ms.AutoNavigation2 != nil {
		ms.AutoNavigationPoints += autoNavigationPointsTable[*ms.AutoNavigation2]
	}

	ms.AutoFreightPoints = ms.AutoStorageFreight*autoStorageFreightValue +
		(ms.AutoFreight1+ms.AutoFreight2+ms.AutoFreight3)*autoHubFreightValue

	ms.AutoBonusPoints = 0
	if ms.AutoBonus {
		ms.AutoBonusPoints += autoBonusValue(ms.BarcodeElement)
	}
	if ms.AutoBonus2 != nil && *ms.AutoBonus2 {
		ms.AutoBonusPoints += autoBonusValue(ms.BarcodeElement)
	}

	ms.DriverControlledAllianceHubPoints = ms.DriverControlledFreight1*dcFreight1Value +
		ms.DriverControlledFreight2*dcFreight2Value +
		ms.DriverControlledFreight3*dcFreight3Value
	if ms.SharedFreight != nil {
		points := *ms.SharedFreight * dcSharedFreightValue
		ms.DriverControlledSharedHubPoints = &points
	} else {
		ms.DriverControlledSharedHubPoints = nil
	}
	ms.DriverControlledStoragePoints = ms.DriverControlledStorageFreight * dcStorageFreightValue

	ms.EndgameDeliveryPoints = ms.EndgameDucksDelivered * endgameDuckValue
	if ms.AllianceBalanced {
		ms.AllianceBalancedPoints = allianceBalancedValue
	} else {
		ms.AllianceBalancedPoints = 0
	}
	if ms.SharedUnbalanced != nil {
		points := 0
		if *ms.SharedUnbalanced {
			points = sharedUnbalancedValue
		}
		ms.SharedUnbalancedPoints = &points
	} else {
		ms.SharedUnbalancedPoints = nil
	}
	ms.EndgameParkingPoints = endgameParkPointsTable[ms.EndgamePark]
	if ms.EndgamePark2 != nil {
		ms.EndgameParkingPoints += endgameParkPointsTable[*ms.EndgamePark2]
	}
	ms.CappingPoints = ms.Capped * cappingValue

	ms.AutoPoints = ms.AutoCarouselPoints +
		ms.AutoNavigationPoints +
		ms.AutoFreightPoints +
		ms.AutoBonusPoints
	ms.DriverControlledPoints = ms.DriverControlledAllianceHubPoints +
		ms.DriverControlledStoragePoints +
		derefOrZero(ms.DriverControlledSharedHubPoints)
	ms.EndgamePoints = ms.EndgameDeliveryPoints +
		ms.AllianceBalancedPoints +
		derefOrZero(ms.SharedUnbalancedPoints) +
		ms.EndgameParkingPoints +
		ms.CappingPoints
	ms.PenaltyPoints = ms.MajorPenalties*majorPenaltyValue + ms.MinorPenalties*minorPenaltyValue
	ms.TotalPoints = ms.AutoPoints + ms.DriverControlledPoints + ms.EndgamePoints + ms.PenaltyPoints
}

func autoBonusValue(element BarcodeElement) int {
	if element == BarcodeDuck {
		return autoBonusDuckValue
	}
	return autoBonusTSEValue
}

func derefOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
