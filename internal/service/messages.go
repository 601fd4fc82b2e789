package service

import (
	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/mealplan"
	"github.com/castlemilk/mydiet/internal/risk"
)

// ExtractRequest carries one uploaded document. Data is base64 in JSON.
type ExtractRequest struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// ExtractResponse mirrors extraction.Record.
type ExtractResponse struct {
	Kind        extraction.Kind          `json:"kind"`
	Text        string                   `json:"text"`
	Placeholder bool                     `json:"placeholder"`
	Numeric     extraction.NumericFields `json:"numeric,omitempty"`
	Row         map[string]string        `json:"row,omitempty"`
}

type RecommendRequest struct {
	Text       string          `json:"text"`
	Attributes diet.Attributes `json:"attributes"`
}

type RecommendResponse struct {
	Diet       diet.Recommendation `json:"diet"`
	Conditions []string            `json:"conditions"`
}

type GenerateMealPlanRequest struct {
	HasDiabetes    bool    `json:"has_diabetes"`
	HasCholesterol bool    `json:"has_cholesterol"`
	Preference     string  `json:"preference"`
	Days           int     `json:"days,omitempty"`
	Seed           *uint64 `json:"seed,omitempty"`
}

type GenerateMealPlanResponse struct {
	Plan mealplan.Plan `json:"plan"`
	Seed uint64        `json:"seed"`
}

// AnalyzeRequest runs the whole pipeline. When Data is set the document
// is extracted and Text is ignored.
type AnalyzeRequest struct {
	Filename   string          `json:"filename,omitempty"`
	Data       []byte          `json:"data,omitempty"`
	Text       string          `json:"text,omitempty"`
	Attributes diet.Attributes `json:"attributes"`
	Preference string          `json:"preference,omitempty"`
	Days       int             `json:"days,omitempty"`
	Seed       *uint64         `json:"seed,omitempty"`
}

type AnalyzeResponse struct {
	ID             string              `json:"id"`
	Extracted      *ExtractResponse    `json:"extracted,omitempty"`
	Diet           diet.Recommendation `json:"diet"`
	Conditions     []string            `json:"conditions"`
	Risk           *risk.Result        `json:"risk,omitempty"`
	WeeklyMealPlan mealplan.Plan       `json:"weekly_meal_plan"`
	Seed           uint64              `json:"seed"`
}

type HealthRequest struct{}

type HealthResponse struct {
	Status     string `json:"status"`
	OCR        string `json:"ocr"`
	OCRVersion string `json:"ocr_version,omitempty"`
}

func toExtractResponse(rec extraction.Record) *ExtractResponse {
	return &ExtractResponse{
		Kind:        rec.Kind,
		Text:        rec.Text,
		Placeholder: extraction.IsPlaceholder(rec.Text),
		Numeric:     rec.Numeric,
		Row:         rec.Row,
	}
}

func conditionLabels(rec diet.Recommendation) []string {
	labels := rec.Conditions.Labels()
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}
