package planner

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Selector picks the task label for the next focus block. Implementations
// may return the same label repeatedly.
type Selector interface {
	Pick(tasks []string) string
}

// RandomSelector picks labels uniformly at random, with replacement.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector returns a RandomSelector; equal seeds give equal sequences.
func NewRandomSelector(seed uint64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomSelector) Pick(tasks []string) string {
	return tasks[s.rng.IntN(len(tasks))]
}

// RoundRobin cycles through the labels in order.
type RoundRobin struct {
	next int
}

func (r *RoundRobin) Pick(tasks []string) string {
	t := tasks[r.next%len(tasks)]
	r.next++
	return t
}

// Selector names accepted by SelectorByName.
const (
	SelectorRandom     = "random"
	SelectorRoundRobin = "round-robin"
)

// SelectorByName returns the selector registered under name.
func SelectorByName(name string, seed uint64) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SelectorRandom:
		return NewRandomSelector(seed), nil
	case SelectorRoundRobin, "roundrobin", "rr":
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown selector %q (want %s or %s)", name, SelectorRandom, SelectorRoundRobin)
	}
}

// ParseTasks splits a comma-separated task list, trimming whitespace and
// dropping empty items.
func ParseTasks(s string) []string {
	var tasks []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
