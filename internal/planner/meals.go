package planner

import (
	"sort"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

// Meal is a meal anchored at an offset from the start of the day.
type Meal struct {
	Label  string        `validate:"required"`
	Offset time.Duration `validate:"gte=0"`
}

// DefaultMeals returns the standard breakfast, lunch, snacks and dinner anchors.
func DefaultMeals() []Meal {
	return []Meal{
		{Label: model.LabelBreakfast, Offset: 60 * time.Minute},
		{Label: model.LabelLunch, Offset: 5 * time.Hour},
		{Label: model.LabelSnacks, Offset: 8*time.Hour + 30*time.Minute},
		{Label: model.LabelDinner, Offset: 11*time.Hour + 30*time.Minute},
	}
}

// anchoredMeal is a meal resolved to an absolute time.
type anchoredMeal struct {
	Label string
	At    time.Time
}

// mealQueue holds pending meals ordered by anchor time. Each meal is
// handed out at most once.
type mealQueue struct {
	items []anchoredMeal
}

func newMealQueue(start time.Time, meals []Meal) *mealQueue {
	items := make([]anchoredMeal, 0, len(meals))
	for _, m := range meals {
		items = append(items, anchoredMeal{Label: m.Label, At: start.Add(m.Offset)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].At.Before(items[j].At) })
	return &mealQueue{items: items}
}

func (q *mealQueue) Len() int { return len(q.items) }

func (q *mealQueue) Peek() (anchoredMeal, bool) {
	if len(q.items) == 0 {
		return anchoredMeal{}, false
	}
	return q.items[0], true
}

func (q *mealQueue) Pop() anchoredMeal {
	m := q.items[0]
	q.items = q.items[1:]
	return m
}
