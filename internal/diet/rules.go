// Package diet classifies clinical text and lab values into conditions and
// turns them into a rule-based diet recommendation.
package diet

import (
	"strings"

	"github.com/castlemilk/mydiet/internal/extraction"
)

// Condition is one label of the fixed clinical taxonomy.
type Condition string

const (
	Diabetes        Condition = "Diabetes"
	HighCholesterol Condition = "High Cholesterol"
	Hypertension    Condition = "Hypertension"
	Obesity         Condition = "Obesity"
	GeneralHealth   Condition = "General Health"
)

// Thresholds are the numeric cut-offs that trigger a condition without a
// keyword in the text.
type Thresholds struct {
	Glucose       float64
	Cholesterol   float64
	BloodPressure float64
	BMI           float64
}

// DefaultThresholds returns the canonical cut-offs (mg/dL, mmHg, kg/m²).
func DefaultThresholds() Thresholds {
	return Thresholds{
		Glucose:       126,
		Cholesterol:   200,
		BloodPressure: 140,
		BMI:           30,
	}
}

// Evidence is the normalized input every rule is evaluated against.
type Evidence struct {
	Text    string // lowercased
	Numeric extraction.NumericFields
}

// NewEvidence lowercases text so rules can use plain substring checks.
func NewEvidence(text string, numeric extraction.NumericFields) Evidence {
	return Evidence{Text: strings.ToLower(text), Numeric: numeric}
}

// Rule is one row of the classification table together with its food
// effects and fixed advice.
type Rule struct {
	Condition Condition
	Keywords  []string
	// Field and Threshold form the numeric trigger; an empty Field disables it.
	Field     string
	Threshold float64

	Allow     []string
	Restrict  []string
	DietPlan  string
	Lifestyle string
}

// Matches reports whether the text contains one of the keywords or the
// numeric field reaches the threshold.
func (r Rule) Matches(ev Evidence) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(ev.Text, kw) {
			return true
		}
	}
	if r.Field == "" {
		return false
	}
	v, ok := ev.Numeric.Get(r.Field)
	return ok && v >= r.Threshold
}

// DefaultRules returns the rule table in evaluation order.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		{
			Condition: Diabetes,
			Keywords:  []string{"diabetes", "high sugar", "hyperglycemia"},
			Field:     extraction.FieldGlucose,
			Threshold: t.Glucose,
			Allow:     []string{"legumes", "nuts", "low-glycemic fruits"},
			Restrict:  []string{"sugar", "sugary drinks"},
			DietPlan:  "Follow a diabetic-friendly low sugar diet.",
			Lifestyle: "Walk daily for 30 minutes.",
		},
		{
			Condition: HighCholesterol,
			Keywords:  []string{"cholesterol", "ldl", "hdl", "triglycerides", "hyperlipidemia"},
			Field:     extraction.FieldCholesterol,
			Threshold: t.Cholesterol,
			Allow:     []string{"oats", "barley", "olive oil"},
			Restrict:  []string{"oily food", "fried food", "high saturated fat foods"},
			DietPlan:  "Increase fiber intake and avoid fried foods.",
		},
		{
			Condition: Hypertension,
			Keywords:  []string{"blood pressure", "hypertension"},
			Field:     extraction.FieldBloodPressure,
			Threshold: t.BloodPressure,
			Allow:     []string{"leafy greens", "bananas", "yogurt"},
			Restrict:  []string{"salt", "processed foods"},
			DietPlan:  "Reduce sodium intake.",
			Lifestyle: "Practice stress management.",
		},
		{
			Condition: Obesity,
			Keywords:  []string{"obesity", "obese"},
			Field:     extraction.FieldBMI,
			Threshold: t.BMI,
			Allow:     []string{"lean proteins", "high-fiber foods"},
			Restrict:  []string{"sugary drinks", "refined carbohydrates"},
			DietPlan:  "Control portion sizes and prefer high-fiber meals.",
			Lifestyle: "Aim for 150 minutes of moderate exercise per week.",
		},
	}
}

// intoleranceEffect lists what an intolerance restricts and which allowed
// foods it rules out.
type intoleranceEffect struct {
	restrict string
	drop     []string
}

var intolerances = map[string]intoleranceEffect{
	"lactose":   {restrict: "dairy products", drop: []string{"yogurt"}},
	"gluten":    {restrict: "gluten", drop: []string{"barley"}},
	"nuts":      {restrict: "nuts", drop: []string{"nuts"}},
	"soy":       {restrict: "soy"},
	"eggs":      {restrict: "eggs"},
	"shellfish": {restrict: "shellfish"},
}

// Fixed advice used when nothing else applies.
const (
	generalDietPlan  = "Maintain a balanced diet."
	generalLifestyle = "Stay active and hydrated."
)

func baseAllowedFoods() []string {
	return []string{"vegetables", "whole grains", "fruits"}
}
