// Package planner builds a daily schedule by walking forward from wake time
// in fixed-size focus blocks, inserting breaks at a fixed cadence and meals
// near their anchor times.
package planner

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

const (
	// BreakLength is the duration of an inserted rest block.
	BreakLength = 15 * time.Minute
	// MealLength is the duration of every meal block.
	MealLength = 30 * time.Minute
	// MinAdjustedFocus is the floor applied after feedback adjustment, in minutes.
	MinAdjustedFocus = 30
)

var (
	// ErrNoTasks is returned when the request has no task labels to schedule.
	ErrNoTasks = errors.New("no tasks given: enter at least one task")
	// ErrInvalidSpan is returned when the end of the day is not after its start.
	ErrInvalidSpan = errors.New("sleep time must be after wake time")
)

// Limits bounds the requested focus-block length before feedback adjustment.
type Limits struct {
	MinFocus int
	MaxFocus int
}

// DefaultLimits mirrors the range offered to the user: 25 to 120 minutes.
var DefaultLimits = Limits{MinFocus: 25, MaxFocus: 120}

// Clamp returns minutes limited to [MinFocus, MaxFocus].
func (l Limits) Clamp(minutes int) int {
	if l.MinFocus > 0 && minutes < l.MinFocus {
		return l.MinFocus
	}
	if l.MaxFocus > 0 && minutes > l.MaxFocus {
		return l.MaxFocus
	}
	return minutes
}

// Request holds everything needed to build one day's schedule.
type Request struct {
	Start           time.Time
	End             time.Time
	Tasks           []string `validate:"required,min=1,dive,required"`
	FocusMinutes    int      `validate:"gt=0"`
	BreakEveryHours int      `validate:"min=1,max=24"`
	Meals           []Meal   `validate:"dive"`
	Completion      int      `validate:"min=0,max=100"`
	Stress          int      `validate:"min=0,max=100"`

	// Selector picks a task label for every focus block. Nil means a
	// random selector seeded from the clock.
	Selector Selector `validate:"-"`
}

// Result is the outcome of a Build call.
type Result struct {
	// FocusMinutes is the adjusted focus-block length actually used.
	FocusMinutes int
	Entries      []model.Entry
}

// TaskCount returns the number of focus blocks in the result.
func (r Result) TaskCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == model.KindTask {
			n++
		}
	}
	return n
}

// Plan wraps the result into a storable plan for the request's day.
func (r Result) Plan(req Request, id string, createdAt time.Time) model.Plan {
	return model.Plan{
		ID:                    id,
		Date:                  req.Start.Format("2006-01-02"),
		Wake:                  model.ClockOf(req.Start).String(),
		Sleep:                 model.ClockOf(req.End).String(),
		Tasks:                 append([]string(nil), req.Tasks...),
		RequestedFocusMinutes: req.FocusMinutes,
		FocusMinutes:          r.FocusMinutes,
		BreakEveryHours:       req.BreakEveryHours,
		Completion:            req.Completion,
		Stress:                req.Stress,
		Entries:               r.Entries,
		CreatedAt:             createdAt,
	}
}

// AdjustFocus applies yesterday's feedback to a requested focus length:
// +5 minutes when completion is above 70, otherwise -5; a further -10 when
// stress is above 60. The result never drops below MinAdjustedFocus.
func AdjustFocus(requested, completion, stress int) int {
	boost := -5
	if completion > 70 {
		boost = 5
	}
	penalty := 0
	if stress > 60 {
		penalty = -10
	}
	return max(MinAdjustedFocus, requested+boost+penalty)
}

// Builder generates schedules. The zero value is not usable; use New.
type Builder struct {
	limits Limits
	log    zerolog.Logger
}

// New returns a Builder that clamps focus lengths to limits.
func New(limits Limits, log zerolog.Logger) *Builder {
	return &Builder{limits: limits, log: log}
}

// Build generates a schedule using DefaultLimits and no logging.
func Build(req Request) (Result, error) {
	return New(DefaultLimits, zerolog.Nop()).Build(req)
}

// Build generates the schedule for req. Entries are returned in time order
// and never overlap.
func (b *Builder) Build(req Request) (Result, error) {
	if len(req.Tasks) == 0 {
		return Result{}, ErrNoTasks
	}
	if !req.End.After(req.Start) {
		return Result{}, ErrInvalidSpan
	}
	if err := Validate(req); err != nil {
		return Result{}, err
	}

	sel := req.Selector
	if sel == nil {
		sel = NewRandomSelector(uint64(time.Now().UnixNano()))
	}

	focusMinutes := AdjustFocus(b.limits.Clamp(req.FocusMinutes), req.Completion, req.Stress)
	focus := time.Duration(focusMinutes) * time.Minute
	breakEvery := time.Duration(req.BreakEveryHours) * time.Hour

	b.log.Debug().
		Int("requested", req.FocusMinutes).
		Int("adjusted", focusMinutes).
		Int("completion", req.Completion).
		Int("stress", req.Stress).
		Msg("focus block length")

	meals := newMealQueue(req.Start, req.Meals)
	cursor := req.Start
	nextBreak := cursor.Add(breakEvery)
	var entries []model.Entry

	for !cursor.Add(focus).After(req.End) {
		// Focus is never shorter than a meal, so a meal fits whenever a block does.
		if m, ok := meals.Peek(); ok && m.At.Before(cursor.Add(focus)) {
			meals.Pop()
			end := cursor.Add(MealLength)
			entries = append(entries, model.Entry{Start: cursor, End: end, Label: m.Label, Kind: model.KindMeal})
			cursor = end
			continue
		}

		end := cursor.Add(focus)
		entries = append(entries, model.Entry{Start: cursor, End: end, Label: sel.Pick(req.Tasks), Kind: model.KindTask})
		cursor = end

		if !cursor.Before(nextBreak) {
			breakEnd := cursor.Add(BreakLength)
			if !breakEnd.After(req.End) {
				entries = append(entries, model.Entry{Start: cursor, End: breakEnd, Label: model.LabelBreak, Kind: model.KindBreak})
				cursor = breakEnd
				nextBreak = cursor.Add(breakEvery)
			}
		}
	}

	for meals.Len() > 0 {
		m := meals.Pop()
		start := cursor
		if m.At.After(start) {
			start = m.At
		}
		end := start.Add(MealLength)
		if end.After(req.End) {
			b.log.Debug().Str("meal", m.Label).Time("anchor", m.At).Msg("meal does not fit before end of day")
			continue
		}
		entries = append(entries, model.Entry{Start: start, End: end, Label: m.Label, Kind: model.KindMeal})
		cursor = end
	}

	return Result{FocusMinutes: focusMinutes, Entries: entries}, nil
}
