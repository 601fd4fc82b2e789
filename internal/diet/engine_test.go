package diet

import (
	"encoding/json"
	"testing"

	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_EmptyTextIsGeneralHealth(t *testing.T) {
	e := NewEngine(nil)

	for _, text := range []string{"", "   ", "\n\t "} {
		rec := e.Recommend(text, Attributes{})
		assert.Equal(t, "General Health", rec.Condition)
		assert.Empty(t, rec.RestrictedFoods)
		assert.Equal(t, GeneralHealthDefault(), rec)
	}
}

func TestRecommend_DiabetesOnly(t *testing.T) {
	e := NewEngine(nil)

	for _, text := range []string{"diabetes", "Patient has DIABETES.", "history: diabetes type 2"} {
		rec := e.Recommend(text, Attributes{})
		assert.Equal(t, "Diabetes", rec.Condition, text)
		assert.True(t, rec.RestrictedFoods.Has("sugar"), text)
		assert.True(t, rec.AllowedFoods.Has("legumes"))
		assert.Equal(t, "Follow a diabetic-friendly low sugar diet.", rec.DietPlan)
		assert.Equal(t, "Walk daily for 30 minutes.", rec.LifestyleAdvice)
	}
}

func TestRecommend_GlucoseWithoutKeyword(t *testing.T) {
	rec := NewEngine(nil).Recommend("Routine annual review.", Attributes{
		Measurements: extraction.NumericFields{extraction.FieldGlucose: 140},
	})
	assert.True(t, rec.Has(Diabetes))
	assert.True(t, rec.RestrictedFoods.Has("sugar"))
}

func TestRecommend_CombinedConditions(t *testing.T) {
	rec := NewEngine(nil).Recommend("High cholesterol and hypertension.", Attributes{})

	assert.Equal(t, "High Cholesterol, Hypertension", rec.Condition)
	for _, f := range []string{"oily food", "fried food", "high saturated fat foods", "salt", "processed foods"} {
		assert.True(t, rec.RestrictedFoods.Has(f), f)
	}
	for _, f := range []string{"vegetables", "whole grains", "fruits", "oats", "barley", "olive oil", "leafy greens", "bananas", "yogurt"} {
		assert.True(t, rec.AllowedFoods.Has(f), f)
	}
	assert.Equal(t, "Increase fiber intake and avoid fried foods. Reduce sodium intake.", rec.DietPlan)
	assert.Equal(t, "Practice stress management.", rec.LifestyleAdvice)
}

func TestRecommend_Intolerances(t *testing.T) {
	rec := NewEngine(nil).Recommend("cholesterol, hypertension, diabetes", Attributes{
		Intolerances: []string{"Lactose", " gluten ", "Nuts", "unknown"},
	})

	assert.True(t, rec.RestrictedFoods.Has("dairy products"))
	assert.True(t, rec.RestrictedFoods.Has("gluten"))
	assert.True(t, rec.RestrictedFoods.Has("nuts"))
	assert.False(t, rec.AllowedFoods.Has("yogurt"))
	assert.False(t, rec.AllowedFoods.Has("barley"))
	assert.False(t, rec.AllowedFoods.Has("nuts"))
	for item := range rec.RestrictedFoods {
		assert.False(t, rec.AllowedFoods.Has(item), "restricted %q must not be allowed", item)
	}
}

func TestRecommend_FoldsAttributesIntoEmptyText(t *testing.T) {
	e := NewEngine(nil)

	rec := e.Recommend("", Attributes{DiabetesStatus: DiabetesType2, HighCholesterol: true})
	assert.Equal(t, "Diabetes, High Cholesterol", rec.Condition)

	rec = e.Recommend("", Attributes{
		DiabetesStatus: DiabetesNo,
		Measurements:   extraction.NumericFields{extraction.FieldCholesterol: 210},
	})
	assert.Equal(t, "High Cholesterol", rec.Condition)

	rec = e.Recommend("", Attributes{
		Measurements: extraction.NumericFields{extraction.FieldGlucose: 90, extraction.FieldBMI: 22},
	})
	assert.Equal(t, "General Health", rec.Condition)
	assert.Empty(t, rec.RestrictedFoods)
	assert.Equal(t, "Maintain a balanced diet.", rec.DietPlan)
}

func TestRecommend_QuotesDocumentSentences(t *testing.T) {
	seg := SegmenterFunc(func(string) []string {
		return []string{
			"Diagnosis: type 2 diabetes.",
			"Limit sugar and refined carbs.",
			"Start brisk walking and quit smoking.",
		}
	})

	rec := NewEngine(seg).Recommend("Diagnosis: type 2 diabetes. Limit sugar and refined carbs. Start brisk walking and quit smoking.", Attributes{})

	assert.Equal(t, "Limit sugar and refined carbs.", rec.DietPlan)
	assert.Equal(t, "Start brisk walking and quit smoking.", rec.LifestyleAdvice)
}

func TestRecommend_GeneralHealthFixedAdvice(t *testing.T) {
	rec := NewEngine(nil).Recommend("Patient is healthy.", Attributes{})
	assert.Equal(t, "General Health", rec.Condition)
	assert.Equal(t, "Maintain a balanced diet.", rec.DietPlan)
	assert.Equal(t, "Stay active and hydrated.", rec.LifestyleAdvice)
}

func TestRecommend_CholesterolOnlyFallsBackForLifestyle(t *testing.T) {
	rec := NewEngine(nil).Recommend("cholesterol", Attributes{})
	assert.Equal(t, "Stay active and hydrated.", rec.LifestyleAdvice)
}

func TestRecommendation_JSONRoundTrip(t *testing.T) {
	rec := NewEngine(nil).Recommend("diabetes with high blood pressure", Attributes{Intolerances: []string{"soy"}})

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"condition", "allowed_foods", "restricted_foods", "diet_plan", "lifestyle_advice"}, keys(raw))

	var back Recommendation
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.Condition, back.Condition)
	assert.Equal(t, rec.AllowedFoods, back.AllowedFoods)
	assert.Equal(t, rec.RestrictedFoods, back.RestrictedFoods)
	assert.Equal(t, rec.DietPlan, back.DietPlan)
	assert.Equal(t, rec.LifestyleAdvice, back.LifestyleAdvice)

	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestNewEngine_CustomRules(t *testing.T) {
	rules := []Rule{{Condition: Obesity, Keywords: []string{"overweight"}, Restrict: []string{"soda"}}}
	rec := NewEngine(nil, WithRules(rules)).Recommend("overweight and diabetes", Attributes{})

	assert.Equal(t, "Obesity", rec.Condition)
	assert.Equal(t, []string{"soda"}, rec.RestrictedFoods.Sorted())
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
