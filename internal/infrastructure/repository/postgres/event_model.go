package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/ftcstats/ftcstats/internal/domain/event"
)

type eventUpsertModel struct {
	Season          int16          `db:"season"`
	Code            string         `db:"code"`
	EventID         string         `db:"event_id"`
	DivisionCode    *string        `db:"division_code"`
	Name            string         `db:"name"`
	Remote          bool           `db:"remote"`
	Hybrid          bool           `db:"hybrid"`
	FieldCount      int            `db:"field_count"`
	Published       bool           `db:"published"`
	Type            int            `db:"type"`
	RegionCode      *string        `db:"region_code"`
	LeagueCode      *string        `db:"league_code"`
	DistrictCode    *string        `db:"district_code"`
	Venue           *string        `db:"venue"`
	Address         *string        `db:"address"`
	Country         *string        `db:"country"`
	StateOrProvince *string        `db:"state_or_province"`
	City            *string        `db:"city"`
	Website         *string        `db:"website"`
	LiveStreamURL   *string        `db:"live_stream_url"`
	Webcasts        pq.StringArray `db:"webcasts"`
	Timezone        *string        `db:"timezone"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           time.Time      `db:"end_at"`
}

func eventToUpsertModel(e event.Event) eventUpsertModel {
	return eventUpsertModel{
		Season:          int16(e.Season),
		Code:            e.Code,
		EventID:         e.EventID,
		DivisionCode:    e.DivisionCode,
		Name:            e.Name,
		Remote:          e.Remote,
		Hybrid:          e.Hybrid,
		FieldCount:      e.FieldCount,
		Published:       e.Published,
		Type:            e.Type,
		RegionCode:      e.RegionCode,
		LeagueCode:      e.LeagueCode,
		DistrictCode:    e.DistrictCode,
		Venue:           e.Venue,
		Address:         e.Address,
		Country:         e.Country,
		StateOrProvince: e.StateOrProvince,
		City:            e.City,
		Website:         e.Website,
		LiveStreamURL:   e.LiveStreamURL,
		Webcasts:        pq.StringArray(e.Webcasts),
		Timezone:        e.Timezone,
		StartAt:         e.Start,
		EndAt:           e.End,
	}
}

const eventUpsertSuffix = `ON CONFLICT (season, code) DO UPDATE SET
    event_id = EXCLUDED.event_id,
    division_code = EXCLUDED.division_code,
    name = EXCLUDED.name,
    remote = EXCLUDED.remote,
    hybrid = EXCLUDED.hybrid,
    field_count = EXCLUDED.field_count,
    published = EXCLUDED.published,
    type = EXCLUDED.type,
    region_code = EXCLUDED.region_code,
    league_code = EXCLUDED.league_code,
    district_code = EXCLUDED.district_code,
    venue = EXCLUDED.venue,
    address = EXCLUDED.address,
    country = EXCLUDED.country,
    state_or_province = EXCLUDED.state_or_province,
    city = EXCLUDED.city,
    website = EXCLUDED.website,
    live_stream_url = EXCLUDED.live_stream_url,
    webcasts = EXCLUDED.webcasts,
    timezone = EXCLUDED.timezone,
    start_at = EXCLUDED.start_at,
    end_at = EXCLUDED.end_at,
    updated_at = NOW()`
