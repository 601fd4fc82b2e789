package diet

import (
	"testing"

	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())

	tests := []struct {
		name    string
		text    string
		numeric extraction.NumericFields
		want    string
	}{
		{"empty evidence", "", nil, "General Health"},
		{"unrelated text", "Patient reports mild headache.", nil, "General Health"},
		{"diabetes keyword", "Known case of Diabetes mellitus", nil, "Diabetes"},
		{"hyperglycemia variant", "episodes of hyperglycemia", nil, "Diabetes"},
		{"glucose threshold only", "routine checkup", extraction.NumericFields{extraction.FieldGlucose: 126}, "Diabetes"},
		{"glucose below threshold", "routine checkup", extraction.NumericFields{extraction.FieldGlucose: 125.9}, "General Health"},
		{"ldl keyword", "LDL elevated", nil, "High Cholesterol"},
		{"cholesterol threshold", "", extraction.NumericFields{extraction.FieldCholesterol: 200}, "High Cholesterol"},
		{"blood pressure keyword", "High Blood Pressure noted", nil, "Hypertension"},
		{"blood pressure reading", "", extraction.NumericFields{extraction.FieldBloodPressure: 150}, "Hypertension"},
		{"bmi threshold", "", extraction.NumericFields{extraction.FieldBMI: 31.2}, "Obesity"},
		{
			name: "additive conditions sorted",
			text: "hypertension and diabetes, obese",
			numeric: extraction.NumericFields{
				extraction.FieldCholesterol: 250,
			},
			want: "Diabetes, High Cholesterol, Hypertension, Obesity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cs := Classify(NewEvidence(tc.text, tc.numeric), rules)
			assert.Equal(t, tc.want, cs.String())
			assert.NotEmpty(t, cs)
		})
	}
}

func TestClassify_GeneralHealthIsExclusive(t *testing.T) {
	cs := Classify(NewEvidence("diabetes", nil), DefaultRules(DefaultThresholds()))
	assert.True(t, cs.Has(Diabetes))
	assert.False(t, cs.Has(GeneralHealth))
}

func TestRule_Matches(t *testing.T) {
	r := Rule{Condition: Hypertension, Keywords: []string{"hypertension"}}
	assert.True(t, r.Matches(NewEvidence("HYPERTENSION stage 1", nil)))
	assert.False(t, r.Matches(NewEvidence("normal", extraction.NumericFields{extraction.FieldBloodPressure: 200})),
		"a rule without a field has no numeric trigger")
}

func TestDefaultRules_CustomThresholds(t *testing.T) {
	rules := DefaultRules(Thresholds{Glucose: 100, Cholesterol: 240, BloodPressure: 130, BMI: 25})
	ev := NewEvidence("", extraction.NumericFields{
		extraction.FieldGlucose:     110,
		extraction.FieldCholesterol: 220,
	})
	assert.Equal(t, "Diabetes", Classify(ev, rules).String())
}

func TestConditionSet_Labels(t *testing.T) {
	cs := NewConditionSet(Obesity, Diabetes, Hypertension)
	assert.Equal(t, []Condition{Diabetes, Hypertension, Obesity}, cs.Labels())
}
