package postgres

import (
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
)

type matchUpsertModel struct {
	Season             int16      `db:"season"`
	EventCode          string     `db:"event_code"`
	ID                 int        `db:"id"`
	HasBeenPlayed      bool       `db:"has_been_played"`
	ScheduledStartTime *time.Time `db:"scheduled_start_time"`
	ActualStartTime    *time.Time `db:"actual_start_time"`
	PostResultTime     *time.Time `db:"post_result_time"`
	TournamentLevel    int16      `db:"tournament_level"`
	Series             int        `db:"series"`
}

func matchToUpsertModel(m match.Match) matchUpsertModel {
	return matchUpsertModel{
		Season:             int16(m.Season),
		EventCode:          m.EventCode,
		ID:                 m.ID,
		HasBeenPlayed:      m.HasBeenPlayed,
		ScheduledStartTime: m.ScheduledStartTime,
		ActualStartTime:    m.ActualStartTime,
		PostResultTime:     m.PostResultTime,
		TournamentLevel:    int16(m.TournamentLevel),
		Series:             m.Series,
	}
}

const matchUpsertSuffix = `ON CONFLICT (season, event_code, id) DO UPDATE SET
    has_been_played = EXCLUDED.has_been_played,
    scheduled_start_time = EXCLUDED.scheduled_start_time,
    actual_start_time = EXCLUDED.actual_start_time,
    post_result_time = EXCLUDED.post_result_time,
    tournament_level = EXCLUDED.tournament_level,
    series = EXCLUDED.series,
    updated_at = NOW()`

type participationUpsertModel struct {
	Season       int16  `db:"season"`
	EventCode    string `db:"event_code"`
	MatchID      int    `db:"match_id"`
	TeamNumber   int    `db:"team_number"`
	Station      string `db:"station"`
	Surrogate    bool   `db:"surrogate"`
	NoShow       bool   `db:"no_show"`
	Disqualified bool   `db:"dq"`
	OnField      bool   `db:"on_field"`
}

func participationToUpsertModel(p participation.Participation) participationUpsertModel {
	return participationUpsertModel{
		Season:       int16(p.Season),
		EventCode:    p.EventCode,
		MatchID:      p.MatchID,
		TeamNumber:   p.TeamNumber,
		Station:      string(p.Station),
		Surrogate:    p.Surrogate,
		NoShow:       p.NoShow,
		Disqualified: p.Disqualified,
		OnField:      p.OnField,
	}
}

const participationUpsertSuffix = `ON CONFLICT (season, event_code, match_id, station) DO UPDATE SET
    team_number = EXCLUDED.team_number,
    surrogate = EXCLUDED.surrogate,
    no_show = EXCLUDED.no_show,
    dq = EXCLUDED.dq,
    on_field = EXCLUDED.on_field,
    updated_at = NOW()`
