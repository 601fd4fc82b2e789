// Package risk labels a complete lab record as Normal or Abnormal, using a
// trained model when one is loaded and fixed thresholds otherwise.
package risk

import (
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/logger"
)

var log = logger.For("risk")

// Label is the binary prediction.
type Label string

const (
	Normal   Label = "Normal"
	Abnormal Label = "Abnormal"
)

// RequiredFeatures is the model input order. Prediction is skipped unless
// every one of them is present.
var RequiredFeatures = []string{
	extraction.FieldAge,
	extraction.FieldGlucose,
	extraction.FieldCholesterol,
	extraction.FieldBloodPressure,
	extraction.FieldBMI,
}

// Thresholds drive the fallback heuristic.
type Thresholds struct {
	Glucose       float64
	Cholesterol   float64
	BloodPressure float64
	BMI           float64
}

// DefaultThresholds returns the fallback cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Glucose: 126, Cholesterol: 240, BloodPressure: 140, BMI: 30}
}

// Predictor is built once at startup and is read-only afterwards.
type Predictor struct {
	model      Model
	thresholds Thresholds
}

// NewPredictor creates a predictor. A nil model means every prediction uses
// the threshold fallback.
func NewPredictor(model Model, thresholds Thresholds) *Predictor {
	return &Predictor{model: model, thresholds: thresholds}
}

// Result is a prediction with its provenance.
type Result struct {
	Label  Label    `json:"label"`
	Source string   `json:"source"` // "model" or "fallback"
	Flags  []string `json:"flags,omitempty"`
}

// Predict returns the label and true, or false when a required feature is
// missing.
func (p *Predictor) Predict(fields extraction.NumericFields) (Label, bool) {
	res, ok := p.Evaluate(fields)
	return res.Label, ok
}

// Evaluate is Predict with the source and the threshold flags that fired.
func (p *Predictor) Evaluate(fields extraction.NumericFields) (Result, bool) {
	if !fields.Has(RequiredFeatures...) {
		return Result{}, false
	}

	flags := p.Flags(fields)
	if p.model != nil {
		x := make([]float64, len(RequiredFeatures))
		for i, f := range RequiredFeatures {
			x[i] = fields[f]
		}
		class, err := p.model.Predict(x)
		if err == nil {
			label := Normal
			if class == 1 {
				label = Abnormal
			}
			return Result{Label: label, Source: "model", Flags: flags}, true
		}
		log.WithError(err).Warn("model prediction failed, using threshold fallback")
	}

	label := Normal
	if len(flags) > 0 {
		label = Abnormal
	}
	return Result{Label: label, Source: "fallback", Flags: flags}, true
}

// Flags names every threshold the record reaches.
func (p *Predictor) Flags(fields extraction.NumericFields) []string {
	checks := []struct {
		field string
		limit float64
	}{
		{extraction.FieldGlucose, p.thresholds.Glucose},
		{extraction.FieldCholesterol, p.thresholds.Cholesterol},
		{extraction.FieldBloodPressure, p.thresholds.BloodPressure},
		{extraction.FieldBMI, p.thresholds.BMI},
	}
	var flags []string
	for _, c := range checks {
		if v, ok := fields.Get(c.field); ok && v >= c.limit {
			flags = append(flags, c.field)
		}
	}
	return flags
}

// LoadPredictor loads the model at path and falls back to thresholds-only
// when path is empty or the artifact cannot be used.
func LoadPredictor(path string, thresholds Thresholds) *Predictor {
	if path == "" {
		return NewPredictor(nil, thresholds)
	}
	m, err := LoadModel(path)
	if err != nil {
		log.WithError(err).Warn("risk model unavailable, using threshold fallback")
		return NewPredictor(nil, thresholds)
	}
	log.WithField("path", path).Info("risk model loaded")
	return NewPredictor(m, thresholds)
}
