// Package eval replays labelled medical reports through extraction and the
// diet engine and scores the recommended conditions and restrictions.
package eval

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
)

// GroundTruth is the expected outcome for one fixture.
type GroundTruth struct {
	Name            string   `json:"name"`
	Document        string   `json:"document"`
	Conditions      []string `json:"conditions"`
	RestrictedFoods []string `json:"restricted_foods"`
}

// EvalResult holds metrics from running one strategy on one fixture.
type EvalResult struct {
	Strategy         string
	Fixture          string
	Expected         []string
	Predicted        []string
	Conditions       CountMetrics
	RestrictedRecall float64
	OverallScore     float64
	Duration         time.Duration
	Error            string // non-empty if the strategy failed
}

// CountMetrics measures condition detection performance.
type CountMetrics struct {
	Expected  int
	Predicted int
	Matched   int
	Precision float64
	Recall    float64
	F1        float64
}

// StrategyFunc turns a document into a recommendation.
type StrategyFunc func(ctx context.Context, doc extraction.Document) (diet.Recommendation, error)

// PipelineStrategy extracts the document and feeds text and lab values to
// the engine, the way the service does.
func PipelineStrategy(x *extraction.Extractor, engine *diet.Engine) StrategyFunc {
	return func(ctx context.Context, doc extraction.Document) (diet.Recommendation, error) {
		rec := x.Extract(ctx, doc)
		return engine.Recommend(rec.Text, diet.Attributes{Measurements: rec.Numeric}), nil
	}
}

// TextOnlyStrategy ignores lab values and classifies on keywords alone.
func TextOnlyStrategy(x *extraction.Extractor, engine *diet.Engine) StrategyFunc {
	return func(ctx context.Context, doc extraction.Document) (diet.Recommendation, error) {
		rec := x.Extract(ctx, doc)
		return engine.Recommend(rec.Text, diet.Attributes{}), nil
	}
}

// --- Metric Functions ---

// ComputeMetrics compares a recommendation against ground truth.
func ComputeMetrics(strategy, fixture string, rec diet.Recommendation, truth *GroundTruth, duration time.Duration) *EvalResult {
	predicted := make([]string, 0, len(rec.Conditions))
	for _, c := range rec.Conditions.Labels() {
		predicted = append(predicted, string(c))
	}

	result := &EvalResult{
		Strategy:  strategy,
		Fixture:   fixture,
		Expected:  truth.Conditions,
		Predicted: predicted,
		Duration:  duration,
	}

	matched := intersect(predicted, truth.Conditions)
	result.Conditions = CountMetrics{
		Expected:  len(truth.Conditions),
		Predicted: len(predicted),
		Matched:   matched,
	}
	if len(predicted) > 0 {
		result.Conditions.Precision = float64(matched) / float64(len(predicted))
	}
	if len(truth.Conditions) > 0 {
		result.Conditions.Recall = float64(matched) / float64(len(truth.Conditions))
	}
	p := result.Conditions.Precision
	r := result.Conditions.Recall
	if p+r > 0 {
		result.Conditions.F1 = 2 * p * r / (p + r)
	}

	result.RestrictedRecall = restrictedRecall(rec.RestrictedFoods, truth.RestrictedFoods)
	result.OverallScore = 0.70*result.Conditions.F1 + 0.30*result.RestrictedRecall
	return result
}

func intersect(a, b []string) int {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[s] = true
	}
	n := 0
	for _, s := range a {
		if seen[s] {
			n++
		}
	}
	return n
}

// restrictedRecall is the share of expected restrictions present. An empty
// expectation is met only by an empty set.
func restrictedRecall(got diet.FoodSet, want []string) float64 {
	if len(want) == 0 {
		if len(got) == 0 {
			return 1
		}
		return 0
	}
	hit := 0
	for _, f := range want {
		if got.Has(f) {
			hit++
		}
	}
	return float64(hit) / float64(len(want))
}

// LabelMetrics aggregates detection counts for one condition label.
type LabelMetrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

// Precision returns TP / (TP + FP).
func (m LabelMetrics) Precision() float64 {
	if m.TruePositives+m.FalsePositives == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(m.TruePositives+m.FalsePositives)
}

// Recall returns TP / (TP + FN).
func (m LabelMetrics) Recall() float64 {
	if m.TruePositives+m.FalseNegatives == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(m.TruePositives+m.FalseNegatives)
}

// PerCondition aggregates label-level counts for one strategy.
func PerCondition(results []*EvalResult, strategy string) map[string]LabelMetrics {
	out := make(map[string]LabelMetrics)
	for _, r := range results {
		if r.Strategy != strategy || r.Error != "" {
			continue
		}
		expected := toSet(r.Expected)
		predicted := toSet(r.Predicted)
		for label := range predicted {
			m := out[label]
			if expected[label] {
				m.TruePositives++
			} else {
				m.FalsePositives++
			}
			out[label] = m
		}
		for label := range expected {
			if !predicted[label] {
				m := out[label]
				m.FalseNegatives++
				out[label] = m
			}
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// --- Runner ---

// RunEval executes all strategies against all fixtures and returns results
// ordered by fixture, then strategy name.
func RunEval(ctx context.Context, strategies map[string]StrategyFunc, fixtures []*Fixture) []*EvalResult {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []*EvalResult
	for _, fixture := range fixtures {
		for _, name := range names {
			start := time.Now()
			rec, err := strategies[name](ctx, fixture.Document)
			elapsed := time.Since(start)

			if err != nil {
				results = append(results, &EvalResult{
					Strategy: name,
					Fixture:  fixture.Name,
					Duration: elapsed,
					Error:    err.Error(),
				})
				continue
			}
			results = append(results, ComputeMetrics(name, fixture.Name, rec, fixture.GroundTruth, elapsed))
		}
	}
	return results
}

// --- Summary Printer ---

// PrintSummary outputs a formatted comparison table to an io.Writer.
func PrintSummary(w io.Writer, results []*EvalResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Strategy\tFixture\tP\tR\tF1\tRestr%\tScore\tTime\tMatch\tError")
	fmt.Fprintln(tw, "--------\t-------\t-\t-\t--\t------\t-----\t----\t-----\t-----")

	strategies := map[string]bool{}
	for _, r := range results {
		strategies[r.Strategy] = true
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.0f%%\t%.2f\t%s\t%d/%d\t%s\n",
			r.Strategy,
			r.Fixture,
			r.Conditions.Precision,
			r.Conditions.Recall,
			r.Conditions.F1,
			r.RestrictedRecall*100,
			r.OverallScore,
			r.Duration.Round(time.Microsecond),
			r.Conditions.Matched,
			r.Conditions.Expected,
			truncate(r.Error, 30),
		)
	}
	tw.Flush()

	names := make([]string, 0, len(strategies))
	for s := range strategies {
		names = append(names, s)
	}
	sort.Strings(names)

	for _, s := range names {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "=== %s: per condition ===\n", s)

		perLabel := PerCondition(results, s)
		labels := make([]string, 0, len(perLabel))
		for l := range perLabel {
			labels = append(labels, l)
		}
		sort.Strings(labels)

		tw2 := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw2, "Condition\tPrecision\tRecall\tTP\tFP\tFN")
		fmt.Fprintln(tw2, "---------\t---------\t------\t--\t--\t--")
		for _, l := range labels {
			m := perLabel[l]
			fmt.Fprintf(tw2, "%s\t%.2f\t%.2f\t%d\t%d\t%d\n",
				l, m.Precision(), m.Recall(), m.TruePositives, m.FalsePositives, m.FalseNegatives)
		}
		tw2.Flush()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
