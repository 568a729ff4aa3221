package msgraph

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

// graphDateTime is the layout Graph expects together with a timeZone name.
const graphDateTime = "2006-01-02T15:04:05"

// transactionNamespace scopes the name-based transaction IDs of pushed events.
var transactionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Tiliavir/trivial-day-planner"))

// Calendar is the subset of the Graph client used for pushing plans.
type Calendar interface {
	GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, ev NewEvent) (CalendarEvent, error)
}

// PushResult holds counters for a push operation.
type PushResult struct {
	Created int
	Skipped int
	Errors  int
}

// PushOptions configures a push run.
type PushOptions struct {
	// Timezone is an IANA name; empty means UTC.
	Timezone   string
	Category   string
	DryRun     bool
	SkipBreaks bool
	// Out receives one progress line per entry; nil means stdout.
	Out io.Writer
	Log zerolog.Logger
}

// TransactionID returns the deterministic Graph transactionId for the i-th
// entry of plan. Pushing the same plan twice yields the same IDs.
func TransactionID(plan *model.Plan, i int) string {
	e := plan.Entries[i]
	name := fmt.Sprintf("%s/%d/%s/%s", plan.ID, i, e.Start.Format(time.RFC3339), e.Label)
	return uuid.NewSHA1(transactionNamespace, []byte(name)).String()
}

// MapEntryToEvent converts a plan entry into a Graph event creation request.
func MapEntryToEvent(plan *model.Plan, i int, opts PushOptions) (NewEvent, error) {
	loc := time.UTC
	tzName := "UTC"
	if opts.Timezone != "" {
		l, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return NewEvent{}, fmt.Errorf("loading timezone %q: %w", opts.Timezone, err)
		}
		loc, tzName = l, opts.Timezone
	}

	e := plan.Entries[i]
	showAs := "busy"
	if e.Kind != model.KindTask {
		showAs = "free"
	}
	ev := NewEvent{
		Subject:       e.Label,
		Start:         DateTimeTimeZone{DateTime: e.Start.In(loc).Format(graphDateTime), TimeZone: tzName},
		End:           DateTimeTimeZone{DateTime: e.End.In(loc).Format(graphDateTime), TimeZone: tzName},
		ShowAs:        showAs,
		TransactionID: TransactionID(plan, i),
	}
	if opts.Category != "" {
		ev.Categories = []string{opts.Category}
	}
	return ev, nil
}

// PushPlan creates one calendar event per plan entry. Entries whose event
// already exists (matched by transactionId or by stored external ID) are
// skipped. Created event IDs are written back to plan.Entries so the caller
// can persist them.
func PushPlan(ctx context.Context, cal Calendar, plan *model.Plan, opts PushOptions) (PushResult, error) {
	var result PushResult
	if len(plan.Entries) == 0 {
		return result, nil
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	from := plan.Entries[0].Start
	to := plan.Entries[len(plan.Entries)-1].End
	existing, err := cal.GetCalendarView(ctx, from, to, opts.Timezone)
	if err != nil {
		return result, fmt.Errorf("fetching existing events: %w", err)
	}
	byTxn := make(map[string]CalendarEvent, len(existing))
	byID := make(map[string]bool, len(existing))
	for _, ev := range existing {
		if ev.IsCancelled {
			continue
		}
		if ev.TransactionID != "" {
			byTxn[ev.TransactionID] = ev
		}
		byID[ev.ID] = true
	}
	opts.Log.Debug().Int("existing", len(existing)).Str("plan", plan.ID).Msg("calendar view loaded")

	for i := range plan.Entries {
		e := &plan.Entries[i]
		span := fmt.Sprintf("%s – %s  %s", timecalc.Format12h(e.Start), timecalc.Format12h(e.End), e.Label)

		if opts.SkipBreaks && e.Kind == model.KindBreak {
			continue
		}

		ev, err := MapEntryToEvent(plan, i, opts)
		if err != nil {
			return result, err
		}

		if found, ok := byTxn[ev.TransactionID]; ok {
			e.ExternalID = found.ID
			fmt.Fprintf(out, "  – Skipped:  %s (already in calendar)\n", span)
			result.Skipped++
			continue
		}
		if e.ExternalID != "" && byID[e.ExternalID] {
			fmt.Fprintf(out, "  – Skipped:  %s (already in calendar)\n", span)
			result.Skipped++
			continue
		}

		if opts.DryRun {
			fmt.Fprintf(out, "  ✓ Would create: %s\n", span)
			result.Created++
			continue
		}

		created, err := cal.CreateEvent(ctx, ev)
		if err != nil {
			fmt.Fprintf(out, "  ! Error creating %q: %v\n", e.Label, err)
			opts.Log.Error().Err(err).Str("label", e.Label).Msg("create event")
			result.Errors++
			continue
		}
		e.ExternalID = created.ID
		fmt.Fprintf(out, "  ✓ Created:  %s\n", span)
		result.Created++
	}

	return result, nil
}
