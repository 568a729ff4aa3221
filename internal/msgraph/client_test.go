package msgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

func TestGetCalendarViewFollowsNextLink(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			_ = json.NewEncoder(w).Encode(calendarViewResponse{
				Value: []CalendarEvent{{ID: "b"}},
			})
			return
		}
		if got := r.Header.Get("Prefer"); got != `outlook.timezone="Europe/Berlin"` {
			t.Errorf("Prefer header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(calendarViewResponse{
			Value:    []CalendarEvent{{ID: "a"}},
			NextLink: srv.URL + "/me/calendarView?page=2",
		})
	}))
	defer srv.Close()

	c := &Client{httpClient: srv.Client(), baseURL: srv.URL}
	from := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	events, err := c.GetCalendarView(context.Background(), from, from.Add(24*time.Hour), "Europe/Berlin")
	if err != nil {
		t.Fatalf("GetCalendarView: %v", err)
	}
	if len(events) != 2 || events[0].ID != "a" || events[1].ID != "b" {
		t.Errorf("events = %+v", events)
	}
}

func TestCreateEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/me/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var ev NewEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CalendarEvent{ID: "new-1", Subject: ev.Subject, TransactionID: ev.TransactionID})
	}))
	defer srv.Close()

	c := &Client{httpClient: srv.Client(), baseURL: srv.URL}
	created, err := c.CreateEvent(context.Background(), NewEvent{Subject: "Study", TransactionID: "txn-1"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID != "new-1" || created.TransactionID != "txn-1" {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateEventHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{httpClient: srv.Client(), baseURL: srv.URL}
	if _, err := c.CreateEvent(context.Background(), NewEvent{Subject: "Study"}); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := &Authenticator{Dir: t.TempDir(), Log: zerolog.Nop()}

	tok, err := a.loadToken()
	if err != nil || tok != nil {
		t.Fatalf("loadToken on empty dir = %v, %v", tok, err)
	}

	want := &oauth2.Token{AccessToken: "at", RefreshToken: "rt", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	if err := a.saveToken(want); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	got, err := a.loadToken()
	if err != nil {
		t.Fatalf("loadToken: %v", err)
	}
	if got.AccessToken != "at" || got.RefreshToken != "rt" || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("token = %+v, want %+v", got, want)
	}
}
