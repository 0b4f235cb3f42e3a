package match

import "testing"

func TestEncodeTraditionalID_RoundTripsMatchNumber(t *testing.T) {
	t.Parallel()

	for _, level := range []TournamentLevel{LevelQuals, LevelSemis, LevelFinals} {
		for series := 0; series <= 2; series++ {
			for matchNumber := 1; matchNumber < 1000; matchNumber += 37 {
				id := EncodeTraditionalID(level, series, matchNumber)
				if got := MatchNumberFromID(id); got != matchNumber {
					t.Fatalf("level=%v series=%d match=%d: decoded %d", level, series, matchNumber, got)
				}
			}
		}
	}
}

func TestEncodeRemoteID_RoundTripsMatchNumber(t *testing.T) {
	t.Parallel()

	for _, teamNumber := range []int{40, 1234, 9999, 23333} {
		for matchNumber := 1; matchNumber <= 6; matchNumber++ {
			id := EncodeRemoteID(teamNumber, matchNumber)
			if got := MatchNumberFromID(id); got != matchNumber {
				t.Fatalf("team=%d match=%d: decoded %d", teamNumber, matchNumber, got)
			}
		}
	}
}

func TestEncodeRemoteID_KnownValue(t *testing.T) {
	t.Parallel()

	if got := EncodeRemoteID(1234, 5); got != 1234005 {
		t.Fatalf("EncodeRemoteID(1234, 5) = %d, want 1234005", got)
	}
}

func TestIDSpaces_DoNotCollide(t *testing.T) {
	t.Parallel()

	// Highest traditional id: finals, series 9, match 999.
	maxTraditional := EncodeTraditionalID(LevelFinals, 9, 999)
	// Lowest remote id upstream produces: smallest real team number, match 1.
	minRemote := EncodeRemoteID(40, 1)
	if maxTraditional >= minRemote {
		t.Fatalf("id spaces overlap: max traditional=%d min remote=%d", maxTraditional, minRemote)
	}
}

func TestLevelMapper_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	mapper := NewLevelMapper(nil)
	cases := map[string]TournamentLevel{
		"QUALIFICATION": LevelQuals,
		"SEMIFINAL":     LevelSemis,
		"FINAL":         LevelFinals,
		"OTHER":         LevelQuals,
		"PLAYOFF":       LevelFinals,
	}
	for apiValue, want := range cases {
		got, ok := mapper.Level(apiValue)
		if !ok || got != want {
			t.Fatalf("Level(%q) = (%v, %t), want (%v, true)", apiValue, got, ok, want)
		}
	}

	if _, ok := mapper.Level("SUPERFINAL"); ok {
		t.Fatal("unknown level string should not resolve")
	}

	overridden := NewLevelMapper(map[string]TournamentLevel{"playoff": LevelSemis})
	got, ok := overridden.Level("PLAYOFF")
	if !ok || got != LevelSemis {
		t.Fatalf("override not applied: got (%v, %t)", got, ok)
	}
}

func TestMatchDescription(t *testing.T) {
	t.Parallel()

	cases := []struct {
		match Match
		want  string
	}{
		{Match{ID: EncodeTraditionalID(LevelQuals, 0, 12), TournamentLevel: LevelQuals}, "Q-12"},
		{Match{ID: EncodeTraditionalID(LevelSemis, 1, 2), TournamentLevel: LevelSemis, Series: 1}, "SF-1-2"},
		{Match{ID: EncodeTraditionalID(LevelFinals, 0, 3), TournamentLevel: LevelFinals}, "F-3"},
	}
	for _, tc := range cases {
		if got := tc.match.Description(); got != tc.want {
			t.Fatalf("Description() = %q, want %q", got, tc.want)
		}
	}
}
