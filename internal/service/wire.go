package service

import (
	"fmt"

	"github.com/castlemilk/mydiet/internal/config"
	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/risk"
)

// NewFromConfig builds the shared components once: the OCR engines, the
// sentence segmenter, the rule engine and the risk predictor.
func NewFromConfig(cfg *config.Config) (*DietService, error) {
	opts := []extraction.Option{
		extraction.WithPreprocessor(extraction.Preprocessor{
			MinWidth:  cfg.OCR.MinWidth,
			Threshold: cfg.OCR.Threshold,
		}),
	}
	if cfg.OCR.TesseractPath != "" {
		opts = append(opts, extraction.WithPrimaryOCR(extraction.NewTesseractEngine(cfg.OCR.TesseractPath)))
	}

	var svcOpts []Option
	if cfg.OCR.RemoteURL != "" {
		remote := extraction.NewRemoteOCRClient(cfg.OCR.RemoteURL, cfg.OCR.APIKey, cfg.OCR.Timeout)
		opts = append(opts, extraction.WithFallbackOCR(remote))
		svcOpts = append(svcOpts, WithOCRHealth(remote))
	}

	segmenter, err := diet.NewSentenceSegmenter()
	if err != nil {
		return nil, fmt.Errorf("init sentence segmenter: %w", err)
	}
	engine := diet.NewEngine(segmenter, diet.WithThresholds(diet.Thresholds{
		Glucose:       cfg.Thresholds.Glucose,
		Cholesterol:   cfg.Thresholds.Cholesterol,
		BloodPressure: cfg.Thresholds.BloodPressure,
		BMI:           cfg.Thresholds.BMI,
	}))

	predictor := risk.LoadPredictor(cfg.Risk.ModelPath, risk.Thresholds{
		Glucose:       cfg.Thresholds.Glucose,
		Cholesterol:   cfg.Thresholds.RiskCholesterol,
		BloodPressure: cfg.Thresholds.BloodPressure,
		BMI:           cfg.Thresholds.BMI,
	})

	svcOpts = append(svcOpts, WithDefaultDays(cfg.MealPlan.Days))
	return NewDietService(extraction.NewExtractor(opts...), engine, predictor, svcOpts...), nil
}
