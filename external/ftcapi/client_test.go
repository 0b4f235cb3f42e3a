package ftcapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/platform/ratelimit"
	"github.com/ftcstats/ftcstats/internal/usecase"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "dGVzdDp0ZXN0",
		Limiter: ratelimit.NewLimiter(0),
	})
}

func TestEventsSendsSinceHeaderAsUSDate(t *testing.T) {
	t.Parallel()

	var gotSince string
	var gotAuth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.Header.Get("FMS-OnlyModifiedSince")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"events":[{"code":"USNYNYCMP","name":"NYC Championship","published":true}]}`))
	})

	since := time.Date(2021, 12, 4, 15, 30, 0, 0, time.UTC)
	events, err := client.FetchSeasonEvents(context.Background(), season.FreightFrenzy, &since)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if gotSince != "12/04/2021" {
		t.Fatalf("since header = %q, want 12/04/2021", gotSince)
	}
	if gotAuth != "Basic dGVzdDp0ZXN0" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if len(events) != 1 || events[0].Code != "USNYNYCMP" {
		t.Fatalf("events = %+v", events)
	}
}

func TestEventsOmitsSinceHeaderOnFirstSync(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header[http.CanonicalHeaderKey("FMS-OnlyModifiedSince")]; ok {
			t.Error("since header must be absent when no cursor exists")
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	})

	if _, err := client.FetchSeasonEvents(context.Background(), season.FreightFrenzy, nil); err != nil {
		t.Fatalf("events: %v", err)
	}
}

func TestNoDataResponsesMapToEmptyResults(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"empty": "",
		"html":  "<!DOCTYPE html>\n<html><body>Service page</body></html>",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			matches, err := client.FetchEventMatches(context.Background(), season.FreightFrenzy, "FTCCMP1")
			if err != nil {
				t.Fatalf("expected no-data to be recoverable, got %v", err)
			}
			if len(matches) != 0 {
				t.Fatalf("matches = %+v, want none", matches)
			}
		})
	}
}

func TestMalformedJSONIsFatalWithDiagnostics(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matches": [{"matchNumber": }]}`))
	})

	_, err := client.FetchEventMatches(context.Background(), season.FreightFrenzy, "FTCCMP1")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "/2021/matches/FTCCMP1") {
		t.Fatalf("error should carry the request path: %v", err)
	}
}

func TestMatchScoresClassifiesTraditionalAndRemote(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matchScores":[
			{"matchLevel":"QUALIFICATION","matchSeries":0,"matchNumber":3,"randomization":2,
			 "alliances":[{"alliance":"Red","barcodeElement1":"DUCK"},{"alliance":"Blue","barcodeElement1":"TEAM_SHIPPING_ELEMENT"}]},
			{"matchNumber":5,"teamNumber":1234,"randomization":1,
			 "scores":{"barcodeElement":"DUCK","carousel":true,"endgameDelivered":4}}
		]}`))
	})

	scores, err := client.FetchEventScores(context.Background(), season.FreightFrenzy, "FTCCMP1")
	if err != nil {
		t.Fatalf("match scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("scores = %+v, want 2 items", scores)
	}

	trad := scores[0]
	if trad.Kind != usecase.ExternalScoresTraditional || trad.Traditional == nil || trad.Remote != nil {
		t.Fatalf("first item should be traditional: %+v", trad)
	}
	if trad.Traditional.MatchLevel != "QUALIFICATION" || len(trad.Traditional.Alliances) != 2 {
		t.Fatalf("traditional item = %+v", trad.Traditional)
	}

	remote := scores[1]
	if remote.Kind != usecase.ExternalScoresRemote || remote.Remote == nil || remote.Traditional != nil {
		t.Fatalf("second item should be remote: %+v", remote)
	}
	if remote.Remote.TeamNumber != 1234 || remote.Remote.MatchNumber != 5 {
		t.Fatalf("remote item = %+v", remote.Remote)
	}
	if !remote.Remote.Scores.Carousel || remote.Remote.Scores.EndgameDelivered != 4 {
		t.Fatalf("remote score set = %+v", remote.Remote.Scores)
	}
}

func TestRequestsShareTheRateLimiter(t *testing.T) {
	t.Parallel()

	var calls []time.Time
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, time.Now())
		_, _ = w.Write([]byte(`{"matches":[]}`))
	})
	client.limiter = ratelimit.NewLimiter(50 * time.Millisecond)

	for _, code := range []string{"A", "B", "C"} {
		if _, err := client.FetchEventMatches(context.Background(), season.FreightFrenzy, code); err != nil {
			t.Fatalf("matches %s: %v", code, err)
		}
	}

	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Sub(calls[i-1]); gap < 45*time.Millisecond {
			t.Fatalf("requests %d and %d only %v apart", i-1, i, gap)
		}
	}
}

type countingLimiter struct {
	mu    sync.Mutex
	waits int
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	l.waits++
	l.mu.Unlock()
	return nil
}

func (l *countingLimiter) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.waits
}

func TestEveryRetryAttemptClaimsALimiterSlot(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "t",
		MaxRetries: 1,
	})
	limiter := &countingLimiter{}
	client.limiter = limiter

	if _, err := client.FetchEventMatches(context.Background(), season.FreightFrenzy, "A"); err != nil {
		t.Fatalf("matches: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
	if got := limiter.count(); got != 2 {
		t.Fatalf("limiter slots claimed = %d, want one per attempt", got)
	}
}

func TestRetriesTransientStatusThenSucceeds(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "t",
		MaxRetries: 1,
		Limiter:    ratelimit.NewLimiter(0),
	})

	if _, err := client.FetchEventMatches(context.Background(), season.FreightFrenzy, "A"); err != nil {
		t.Fatalf("matches: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}
