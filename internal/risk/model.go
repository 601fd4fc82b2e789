package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

//go:generate mockgen -source=model.go -destination=model_mock.go -package=risk

// Model is a trained binary classifier over the RequiredFeatures vector.
// Predict returns 1 for abnormal and 0 for normal.
type Model interface {
	Predict(x []float64) (int, error)
}

// LogisticModel is a logistic-regression artifact exported as JSON:
//
//	{"features": [...], "coefficients": [...], "intercept": -4.2, "threshold": 0.5}
type LogisticModel struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold"`
}

// LoadModel reads an artifact and reorders its coefficients to match
// RequiredFeatures.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %q: %w", path, err)
	}
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %q: %w", path, err)
	}
	if err := m.normalize(); err != nil {
		return nil, fmt.Errorf("model %q: %w", path, err)
	}
	return &m, nil
}

func (m *LogisticModel) normalize() error {
	if len(m.Features) != len(m.Coefficients) {
		return fmt.Errorf("%d features but %d coefficients", len(m.Features), len(m.Coefficients))
	}
	if len(m.Features) != len(RequiredFeatures) {
		return fmt.Errorf("expected %d features, got %d", len(RequiredFeatures), len(m.Features))
	}

	index := make(map[string]int, len(m.Features))
	for i, f := range m.Features {
		index[f] = i
	}
	coef := make([]float64, len(RequiredFeatures))
	for i, f := range RequiredFeatures {
		j, ok := index[f]
		if !ok {
			return fmt.Errorf("missing feature %q", f)
		}
		coef[i] = m.Coefficients[j]
	}

	m.Features = append([]string(nil), RequiredFeatures...)
	m.Coefficients = coef
	if m.Threshold <= 0 || m.Threshold >= 1 {
		m.Threshold = 0.5
	}
	return nil
}

// Probability returns the modelled probability of the abnormal class.
func (m *LogisticModel) Probability(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Coefficients), len(x))
	}
	z := m.Intercept
	for i, v := range x {
		z += m.Coefficients[i] * v
	}
	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("prediction is not a number")
	}
	return p, nil
}

// Predict implements Model.
func (m *LogisticModel) Predict(x []float64) (int, error) {
	p, err := m.Probability(x)
	if err != nil {
		return 0, err
	}
	if p >= m.Threshold {
		return 1, nil
	}
	return 0, nil
}
