package match

// The match id packs tournament level, series and match number (or, for
// remote events, team number and match number) into one integer so schedule
// rows and score payloads can be joined without a separate lookup table.
// Traditional ids stay below 40000 while remote ids start at 1000*1000
// (lowest team number with a remote score is well above 39), so the two id
// spaces never collide for real upstream data.

// EncodeTraditionalID derives the id of a multi-alliance match.
func EncodeTraditionalID(level TournamentLevel, series, matchNumber int) int {
	return int(level)*10000 + series*1000 + matchNumber
}

// EncodeRemoteID derives the id of a single-team remote match.
func EncodeRemoteID(teamNumber, matchNumber int) int {
	return teamNumber*1000 + matchNumber
}

// MatchNumberFromID recovers the match number from either id form.
func MatchNumberFromID(id int) int {
	return id % 1000
}
