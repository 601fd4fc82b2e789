// Package service composes the extraction, diet, risk and meal plan
// packages into one pipeline and exposes it over connect.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/logger"
	"github.com/castlemilk/mydiet/internal/mealplan"
	"github.com/castlemilk/mydiet/internal/risk"
	"github.com/google/uuid"
)

var log = logger.For("service")

var (
	ErrEmptyDocument = errors.New("document data is empty")
	ErrInvalidDays   = fmt.Errorf("days must be between %d and %d", mealplan.MinDays, mealplan.MaxDays)
)

// DietService holds the shared, read-only pipeline components. Everything
// else is built per request.
type DietService struct {
	extractor *extraction.Extractor
	engine    *diet.Engine
	predictor *risk.Predictor
	ocrHealth OCRHealthChecker
	days      int
	seed      func() uint64
}

// OCRHealthChecker reports whether the remote OCR fallback is reachable.
type OCRHealthChecker interface {
	HealthCheck(ctx context.Context) (*extraction.RemoteHealthResponse, error)
}

// Option configures a DietService.
type Option func(*DietService)

// WithDefaultDays sets the plan length used when a request omits days.
func WithDefaultDays(days int) Option {
	return func(s *DietService) { s.days = days }
}

// WithSeedSource replaces the time-derived seed used when a request omits
// one.
func WithSeedSource(fn func() uint64) Option {
	return func(s *DietService) { s.seed = fn }
}

// WithOCRHealth makes Health check the remote OCR service too.
func WithOCRHealth(c OCRHealthChecker) Option {
	return func(s *DietService) { s.ocrHealth = c }
}

// NewDietService creates the service. A nil predictor skips risk
// evaluation.
func NewDietService(extractor *extraction.Extractor, engine *diet.Engine, predictor *risk.Predictor, opts ...Option) *DietService {
	s := &DietService{
		extractor: extractor,
		engine:    engine,
		predictor: predictor,
		days:      mealplan.DefaultDays,
		seed:      func() uint64 { return uint64(time.Now().UnixNano()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract turns an uploaded document into text and lab values.
func (s *DietService) Extract(ctx context.Context, req *connect.Request[ExtractRequest]) (*connect.Response[ExtractResponse], error) {
	if len(req.Msg.Data) == 0 {
		return nil, mapError(ErrEmptyDocument)
	}
	rec := s.extractor.Extract(ctx, extraction.Document{Name: req.Msg.Filename, Data: req.Msg.Data})
	return connect.NewResponse(toExtractResponse(rec)), nil
}

// Recommend classifies text and attributes into a diet recommendation.
func (s *DietService) Recommend(ctx context.Context, req *connect.Request[RecommendRequest]) (*connect.Response[RecommendResponse], error) {
	rec := s.engine.Recommend(req.Msg.Text, req.Msg.Attributes)
	return connect.NewResponse(&RecommendResponse{Diet: rec, Conditions: conditionLabels(rec)}), nil
}

// GenerateMealPlan builds a schedule for the given condition flags.
func (s *DietService) GenerateMealPlan(ctx context.Context, req *connect.Request[GenerateMealPlanRequest]) (*connect.Response[GenerateMealPlanResponse], error) {
	pref, days, seed, err := s.planInputs(req.Msg.Preference, req.Msg.Days, req.Msg.Seed)
	if err != nil {
		return nil, mapError(err)
	}
	plan := mealplan.NewSeededGenerator(seed, days).Generate(req.Msg.HasDiabetes, req.Msg.HasCholesterol, pref)
	return connect.NewResponse(&GenerateMealPlanResponse{Plan: plan, Seed: seed}), nil
}

// Analyze runs extraction (or takes the manual text), the rule engine, the
// risk predictor when every feature is known, and the meal plan generator.
func (s *DietService) Analyze(ctx context.Context, req *connect.Request[AnalyzeRequest]) (*connect.Response[AnalyzeResponse], error) {
	msg := req.Msg
	pref := msg.Preference
	if pref == "" {
		pref = msg.Attributes.DietType
	}
	preference, days, seed, err := s.planInputs(pref, msg.Days, msg.Seed)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &AnalyzeResponse{ID: uuid.NewString(), Seed: seed}
	text := strings.TrimSpace(msg.Text)
	var numeric extraction.NumericFields
	if len(msg.Data) > 0 {
		rec := s.extractor.Extract(ctx, extraction.Document{Name: msg.Filename, Data: msg.Data})
		resp.Extracted = toExtractResponse(rec)
		text = rec.Text
		numeric = rec.Numeric
	}

	// Values typed by the patient win over values parsed from the document.
	attrs := msg.Attributes
	attrs.Measurements = numeric.Merge(attrs.Measurements)

	rec := s.engine.Recommend(text, attrs)
	resp.Diet = rec
	resp.Conditions = conditionLabels(rec)

	if s.predictor != nil {
		if result, ok := s.predictor.Evaluate(attrs.Measurements); ok {
			resp.Risk = &result
		}
	}

	gen := mealplan.NewSeededGenerator(seed, days)
	resp.WeeklyMealPlan = gen.Generate(rec.Has(diet.Diabetes), rec.Has(diet.HighCholesterol), preference)

	log.WithField("id", resp.ID).
		WithField("condition", rec.Condition).
		WithField("group", resp.WeeklyMealPlan.Group).
		WithField("risk", resp.Risk != nil).
		Info("analysis complete")
	return connect.NewResponse(resp), nil
}

// Health reports service status and, when configured, the remote OCR
// status.
func (s *DietService) Health(ctx context.Context, req *connect.Request[HealthRequest]) (*connect.Response[HealthResponse], error) {
	resp := &HealthResponse{Status: "ok", OCR: "disabled"}
	if s.ocrHealth != nil {
		h, err := s.ocrHealth.HealthCheck(ctx)
		if err != nil {
			log.WithError(err).Warn("remote OCR health check failed")
			return nil, mapError(err)
		}
		resp.OCR = h.Status
		resp.OCRVersion = h.Version
	}
	return connect.NewResponse(resp), nil
}

func (s *DietService) planInputs(pref string, days int, seed *uint64) (mealplan.Preference, int, uint64, error) {
	p, err := mealplan.ParsePreference(pref)
	if err != nil {
		return "", 0, 0, err
	}
	if days == 0 {
		days = s.days
	}
	if days < mealplan.MinDays || days > mealplan.MaxDays {
		return "", 0, 0, ErrInvalidDays
	}
	if seed != nil {
		return p, days, *seed, nil
	}
	return p, days, s.seed(), nil
}

// mapError converts pipeline errors to connect codes.
func mapError(err error) *connect.Error {
	var extErr *extraction.ExtractionError
	switch {
	case errors.Is(err, ErrEmptyDocument), errors.Is(err, ErrInvalidDays):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, mealplan.ErrUnknownPreference):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &extErr):
		switch extErr.Code {
		case extraction.ErrOCRUnavailable:
			return connect.NewError(connect.CodeUnavailable, fmt.Errorf("%s", extErr.Message))
		case extraction.ErrOCRTimeout:
			return connect.NewError(connect.CodeDeadlineExceeded, fmt.Errorf("%s", extErr.Message))
		case extraction.ErrInvalidDocument:
			return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s", extErr.Message))
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}
