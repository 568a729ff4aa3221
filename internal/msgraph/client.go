package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client is an authenticated Microsoft Graph API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Graph API client using the provided token and config.
// Refreshed tokens are written back through auth.
func NewClient(ctx context.Context, auth *Authenticator, tok *oauth2.Token, cfg *oauth2.Config) *Client {
	ts := cfg.TokenSource(ctx, tok)
	return &Client{
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts, auth: auth}),
		baseURL:    graphBaseURL,
	}
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	auth *Authenticator
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	// Best-effort save; ignore errors.
	_ = s.auth.saveToken(tok)
	return tok, nil
}

// DateTimeTimeZone is Graph's wall-clock time plus zone name.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CalendarEvent represents a Microsoft Graph calendar event.
type CalendarEvent struct {
	ID            string           `json:"id"`
	Subject       string           `json:"subject"`
	TransactionID string           `json:"transactionId"`
	Categories    []string         `json:"categories"`
	ShowAs        string           `json:"showAs"` // "free", "tentative", "busy", "oof", "workingElsewhere", "unknown"
	IsCancelled   bool             `json:"isCancelled"`
	Start         DateTimeTimeZone `json:"start"`
	End           DateTimeTimeZone `json:"end"`
}

// NewEvent is the request body for creating an event.
type NewEvent struct {
	Subject       string           `json:"subject"`
	Start         DateTimeTimeZone `json:"start"`
	End           DateTimeTimeZone `json:"end"`
	ShowAs        string           `json:"showAs"`
	Categories    []string         `json:"categories,omitempty"`
	TransactionID string           `json:"transactionId"`
	IsReminderOn  bool             `json:"isReminderOn"`
}

// calendarViewResponse is the Graph API paged response for calendar events.
type calendarViewResponse struct {
	Value    []CalendarEvent `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// GetCalendarView fetches calendar events in [from, to) using the calendarView endpoint.
// timezone is an IANA timezone name (e.g. "Europe/Berlin"); pass "" for UTC.
func (c *Client) GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error) {
	startISO := from.UTC().Format(time.RFC3339)
	endISO := to.UTC().Format(time.RFC3339)

	endpoint := fmt.Sprintf("%s/me/calendarView?startDateTime=%s&endDateTime=%s&$top=100",
		c.baseURL,
		url.QueryEscape(startISO),
		url.QueryEscape(endISO),
	)

	var all []CalendarEvent
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if timezone != "" {
			req.Header.Set("Prefer", fmt.Sprintf(`outlook.timezone="%s"`, timezone))
		}

		body, err := c.do(req, http.StatusOK)
		if err != nil {
			return nil, err
		}

		var page calendarViewResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding graph response: %w", err)
		}

		all = append(all, page.Value...)
		endpoint = page.NextLink
	}
	return all, nil
}

// CreateEvent creates ev in the signed-in user's default calendar.
func (c *Client) CreateEvent(ctx context.Context, ev NewEvent) (CalendarEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("encoding event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/me/events", bytes.NewReader(payload))
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, http.StatusCreated)
	if err != nil {
		return CalendarEvent{}, err
	}
	var created CalendarEvent
	if err := json.Unmarshal(body, &created); err != nil {
		return CalendarEvent{}, fmt.Errorf("decoding graph response: %w", err)
	}
	return created, nil
}

// do sends req and returns the body if the status matches want.
func (c *Client) do(req *http.Request, want int) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != want {
		return nil, fmt.Errorf("graph API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
