package diet

import (
	"strings"

	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/logger"
)

var log = logger.For("diet")

// DiabetesStatus is the diabetes answer of the patient form.
type DiabetesStatus string

const (
	DiabetesNo    DiabetesStatus = "No"
	DiabetesYes   DiabetesStatus = "Yes"
	DiabetesType1 DiabetesStatus = "Type 1"
	DiabetesType2 DiabetesStatus = "Type 2"
)

// Attributes are the patient details supplied next to (or instead of) a
// document. All fields are optional.
type Attributes struct {
	DiabetesStatus  DiabetesStatus           `json:"diabetes_status,omitempty"`
	HighCholesterol bool                     `json:"high_cholesterol,omitempty"`
	Measurements    extraction.NumericFields `json:"measurements,omitempty"`
	Intolerances    []string                 `json:"intolerances,omitempty"`
	Gender          string                   `json:"gender,omitempty"`
	ActivityLevel   string                   `json:"activity_level,omitempty"`
	DietType        string                   `json:"diet_type,omitempty"`
}

func (a Attributes) hasDiabetes() bool {
	return a.DiabetesStatus != "" && a.DiabetesStatus != DiabetesNo
}

// Recommendation is the result of one Recommend call.
type Recommendation struct {
	Condition       string  `json:"condition"`
	AllowedFoods    FoodSet `json:"allowed_foods"`
	RestrictedFoods FoodSet `json:"restricted_foods"`
	DietPlan        string  `json:"diet_plan"`
	LifestyleAdvice string  `json:"lifestyle_advice"`

	Conditions ConditionSet `json:"-"`
}

// Has reports whether the recommendation was built for condition c.
func (r Recommendation) Has(c Condition) bool {
	return r.Conditions.Has(c)
}

// GeneralHealthDefault is returned verbatim when there is nothing to go on.
func GeneralHealthDefault() Recommendation {
	return Recommendation{
		Condition:       string(GeneralHealth),
		AllowedFoods:    NewFoodSet(baseAllowedFoods()...),
		RestrictedFoods: NewFoodSet(),
		DietPlan:        generalDietPlan,
		LifestyleAdvice: generalLifestyle,
		Conditions:      NewConditionSet(GeneralHealth),
	}
}

// Engine maps text and patient attributes onto a Recommendation.
type Engine struct {
	rules      []Rule
	thresholds Thresholds
	segmenter  Segmenter
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithThresholds changes the numeric triggers of the default rule table.
func WithThresholds(t Thresholds) EngineOption {
	return func(e *Engine) { e.thresholds = t }
}

// WithRules replaces the rule table.
func WithRules(rules []Rule) EngineOption {
	return func(e *Engine) { e.rules = rules }
}

// NewEngine creates an engine. A nil segmenter disables quoting advice from
// the document; the fixed sentences are used instead.
func NewEngine(segmenter Segmenter, opts ...EngineOption) *Engine {
	e := &Engine{thresholds: DefaultThresholds(), segmenter: segmenter}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = DefaultRules(e.thresholds)
	}
	return e
}

// Recommend classifies text together with the attributes and builds the
// food sets and advice. It never fails.
func (e *Engine) Recommend(text string, attrs Attributes) Recommendation {
	effective := e.effectiveText(text, attrs)
	if effective == "" && len(attrs.Measurements) == 0 {
		log.Debug("no text and no measurements, using general health default")
		return GeneralHealthDefault()
	}

	cs := Classify(NewEvidence(effective, attrs.Measurements), e.rules)

	allowed := NewFoodSet(baseAllowedFoods()...)
	restricted := NewFoodSet()
	var fixedDiet, fixedLifestyle []string
	for _, r := range e.rules {
		if !cs.Has(r.Condition) {
			continue
		}
		allowed.Add(r.Allow...)
		restricted.Add(r.Restrict...)
		if r.DietPlan != "" {
			fixedDiet = append(fixedDiet, r.DietPlan)
		}
		if r.Lifestyle != "" {
			fixedLifestyle = append(fixedLifestyle, r.Lifestyle)
		}
	}

	for _, name := range attrs.Intolerances {
		effect, ok := intolerances[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			log.WithField("intolerance", name).Debug("unknown intolerance ignored")
			continue
		}
		restricted.Add(effect.restrict)
		allowed.Remove(effect.drop...)
	}
	for item := range restricted {
		allowed.Remove(item)
	}

	quotedDiet, quotedLifestyle := adviceFromText(e.segmenter, text)

	rec := Recommendation{
		Condition:       cs.String(),
		AllowedFoods:    allowed,
		RestrictedFoods: restricted,
		DietPlan:        pickAdvice(quotedDiet, fixedDiet, generalDietPlan),
		LifestyleAdvice: pickAdvice(quotedLifestyle, fixedLifestyle, generalLifestyle),
		Conditions:      cs,
	}
	log.WithField("condition", rec.Condition).
		WithField("restricted", len(restricted)).
		Debug("recommendation built")
	return rec
}

// effectiveText trims text and, when nothing is left, folds the form answers
// into keywords the rule table understands.
func (e *Engine) effectiveText(text string, attrs Attributes) string {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed
	}
	var tokens []string
	if attrs.hasDiabetes() {
		tokens = append(tokens, "diabetes")
	}
	chol, measured := attrs.Measurements.Get(extraction.FieldCholesterol)
	if attrs.HighCholesterol || (measured && chol >= e.thresholds.Cholesterol) {
		tokens = append(tokens, "cholesterol")
	}
	return strings.Join(tokens, " ")
}
