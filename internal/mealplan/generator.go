// Package mealplan expands a condition group and a dietary preference into
// a multi-day meal schedule.
package mealplan

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownPreference is returned by ParsePreference.
var ErrUnknownPreference = errors.New("unknown diet preference")

// Preference is the dietary preference of the patient.
type Preference string

const (
	Vegetarian    Preference = "Vegetarian"
	NonVegetarian Preference = "Non-Vegetarian"
	Vegan         Preference = "Vegan"
)

// IsVegetarian is true for Vegetarian and Vegan. Eggs count as non-veg.
func (p Preference) IsVegetarian() bool {
	return p == Vegetarian || p == Vegan
}

// ParsePreference accepts the display names case-insensitively, plus
// "omnivore" and "non-veg" for Non-Vegetarian. Empty input is Vegetarian.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vegetarian", "veg":
		return Vegetarian, nil
	case "non-vegetarian", "nonvegetarian", "non-veg", "nonveg", "omnivore":
		return NonVegetarian, nil
	case "vegan":
		return Vegan, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPreference, s)
}

// Group is the condition group a plan is drawn from.
type Group string

const (
	GroupBoth        Group = "both"
	GroupDiabetes    Group = "diabetes"
	GroupCholesterol Group = "cholesterol"
	GroupGeneral     Group = "general"
)

// SelectGroup applies the priority both > diabetes > cholesterol > general.
func SelectGroup(hasDiabetes, hasCholesterol bool) Group {
	switch {
	case hasDiabetes && hasCholesterol:
		return GroupBoth
	case hasDiabetes:
		return GroupDiabetes
	case hasCholesterol:
		return GroupCholesterol
	default:
		return GroupGeneral
	}
}

// Day is one row of the schedule.
type Day struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
	Dinner    string `json:"dinner"`
}

// Plan is an ordered schedule together with how it was chosen.
type Plan struct {
	Group      Group      `json:"group"`
	Preference Preference `json:"preference"`
	Pool       int        `json:"pool"`
	Days       []Day      `json:"days"`
}

const (
	MinDays     = 2
	MaxDays     = 7
	DefaultDays = 7
)

// Generator builds plans. It is not safe for concurrent use because it owns
// its random source; create one per request.
type Generator struct {
	rng  *rand.Rand
	days int
}

// NewGenerator creates a generator. A nil rng disables randomization: the
// first pool is used with its lists in declared order. days outside [2, 7]
// selects DefaultDays.
func NewGenerator(rng *rand.Rand, days int) *Generator {
	if days < MinDays || days > MaxDays {
		days = DefaultDays
	}
	return &Generator{rng: rng, days: days}
}

// NewSeededGenerator is NewGenerator with a PCG source seeded by seed.
func NewSeededGenerator(seed uint64, days int) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)), days)
}

// Generate builds the schedule for the group selected by the two flags.
func (g *Generator) Generate(hasDiabetes, hasCholesterol bool, pref Preference) Plan {
	group := SelectGroup(hasDiabetes, hasCholesterol)
	pools := menus(pref)[group]

	idx := 0
	if g.rng != nil && len(pools) > 1 {
		idx = g.rng.IntN(len(pools))
	}
	p := pools[idx]

	breakfast := g.shuffled(p.breakfast)
	lunch := g.shuffled(p.lunch)
	snack := g.shuffled(p.snack)
	dinner := g.shuffled(p.dinner)

	days := make([]Day, g.days)
	for i := range days {
		days[i] = Day{
			Breakfast: breakfast[i%len(breakfast)],
			Lunch:     lunch[i%len(lunch)],
			Snack:     snack[i%len(snack)],
			Dinner:    dinner[i%len(dinner)],
		}
	}
	return Plan{Group: group, Preference: pref, Pool: idx, Days: days}
}

func (g *Generator) shuffled(items []string) []string {
	out := append([]string(nil), items...)
	if g.rng != nil {
		g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
