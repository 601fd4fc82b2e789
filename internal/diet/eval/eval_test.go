package eval

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
)

// --- Unit Tests for Metric Functions ---

func TestRestrictedRecall(t *testing.T) {
	tests := []struct {
		name string
		got  diet.FoodSet
		want []string
		exp  float64
	}{
		{"all present", diet.NewFoodSet("sugar", "salt"), []string{"sugar"}, 1},
		{"half present", diet.NewFoodSet("sugar"), []string{"sugar", "salt"}, 0.5},
		{"none expected none given", diet.NewFoodSet(), nil, 1},
		{"none expected some given", diet.NewFoodSet("salt"), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := restrictedRecall(tt.got, tt.want); got != tt.exp {
				t.Errorf("restrictedRecall() = %.2f, want %.2f", got, tt.exp)
			}
		})
	}
}

func TestComputeMetrics(t *testing.T) {
	rec := diet.Recommendation{
		Conditions:      diet.NewConditionSet(diet.Diabetes, diet.Hypertension),
		RestrictedFoods: diet.NewFoodSet("sugar", "salt"),
	}
	truth := &GroundTruth{
		Conditions:      []string{"Diabetes"},
		RestrictedFoods: []string{"sugar"},
	}

	result := ComputeMetrics("test", "fixture", rec, truth, 0)

	if result.Conditions.Precision != 0.5 {
		t.Errorf("expected precision 0.5, got %.2f", result.Conditions.Precision)
	}
	if result.Conditions.Recall != 1.0 {
		t.Errorf("expected recall 1.0, got %.2f", result.Conditions.Recall)
	}
	if result.RestrictedRecall != 1.0 {
		t.Errorf("expected restricted recall 1.0, got %.2f", result.RestrictedRecall)
	}
	if result.OverallScore < 0.7 || result.OverallScore > 0.8 {
		t.Errorf("expected overall score in [0.7, 0.8], got %.3f", result.OverallScore)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	result := ComputeMetrics("test", "empty", diet.Recommendation{}, &GroundTruth{RestrictedFoods: []string{"sugar"}}, 0)
	if result.Conditions.F1 != 0 {
		t.Errorf("expected F1 0 for empty, got %.2f", result.Conditions.F1)
	}
	if result.OverallScore != 0 {
		t.Errorf("expected score 0 for empty, got %.3f", result.OverallScore)
	}
}

func TestPerCondition(t *testing.T) {
	results := []*EvalResult{
		{Strategy: "s", Expected: []string{"Diabetes"}, Predicted: []string{"Diabetes", "Obesity"}},
		{Strategy: "s", Expected: []string{"Hypertension"}, Predicted: []string{"General Health"}},
		{Strategy: "other", Expected: []string{"Diabetes"}, Predicted: nil},
		{Strategy: "s", Error: "boom"},
	}

	got := PerCondition(results, "s")

	if m := got["Diabetes"]; m.TruePositives != 1 || m.FalseNegatives != 0 || m.Precision() != 1 {
		t.Errorf("Diabetes = %+v", m)
	}
	if m := got["Obesity"]; m.FalsePositives != 1 || m.Precision() != 0 {
		t.Errorf("Obesity = %+v", m)
	}
	if m := got["Hypertension"]; m.FalseNegatives != 1 || m.Recall() != 0 {
		t.Errorf("Hypertension = %+v", m)
	}
}

// --- Fixture Loading ---

func TestLoadFixtures(t *testing.T) {
	fixtures, err := LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures() error: %v", err)
	}

	expectedNames := []string{
		"cholesterol_hypertension",
		"diabetes_report",
		"healthy_checkup",
		"missing_column",
		"obesity_labs",
	}
	if len(fixtures) != len(expectedNames) {
		t.Fatalf("expected %d fixtures, got %d", len(expectedNames), len(fixtures))
	}
	for i, f := range fixtures {
		if f.Name != expectedNames[i] {
			t.Errorf("fixture[%d].Name = %q, want %q", i, f.Name, expectedNames[i])
		}
		if len(f.Document.Data) == 0 {
			t.Errorf("fixture[%d] %q: empty document", i, f.Name)
		}
		if len(f.GroundTruth.Conditions) == 0 {
			t.Errorf("fixture[%d] %q: no expected conditions", i, f.Name)
		}
	}
}

// --- Pipeline Eval ---

func TestEval_Strategies(t *testing.T) {
	fixtures, err := LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures() error: %v", err)
	}

	x := extraction.NewExtractor()
	engine := diet.NewEngine(nil)
	strategies := map[string]StrategyFunc{
		"pipeline":  PipelineStrategy(x, engine),
		"text-only": TextOnlyStrategy(x, engine),
		"failing": func(context.Context, extraction.Document) (diet.Recommendation, error) {
			return diet.Recommendation{}, errors.New("strategy unavailable")
		},
	}

	results := RunEval(context.Background(), strategies, fixtures)
	if len(results) != len(fixtures)*len(strategies) {
		t.Fatalf("expected %d results, got %d", len(fixtures)*len(strategies), len(results))
	}

	var buf bytes.Buffer
	PrintSummary(&buf, results)
	t.Log("\n" + buf.String())

	for _, r := range results {
		switch r.Strategy {
		case "pipeline":
			if r.Conditions.F1 != 1 || r.RestrictedRecall != 1 {
				t.Errorf("[pipeline/%s] F1=%.2f Restr=%.2f predicted=%v expected=%v",
					r.Fixture, r.Conditions.F1, r.RestrictedRecall, r.Predicted, r.Expected)
			}
		case "failing":
			if r.Error == "" {
				t.Errorf("[failing/%s] expected error", r.Fixture)
			}
		}
	}

	textOnly := PerCondition(results, "text-only")
	if textOnly["Obesity"].Recall() != 0 {
		t.Errorf("text-only should miss BMI-only obesity, recall=%.2f", textOnly["Obesity"].Recall())
	}

	if !strings.Contains(buf.String(), "=== pipeline: per condition ===") {
		t.Error("summary is missing the per-condition table")
	}
}
