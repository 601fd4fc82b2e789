package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/mealplan"
	"github.com/castlemilk/mydiet/internal/risk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(opts ...Option) *DietService {
	return NewDietService(
		extraction.NewExtractor(),
		diet.NewEngine(nil),
		risk.NewPredictor(nil, risk.DefaultThresholds()),
		opts...,
	)
}

func seedPtr(v uint64) *uint64 { return &v }

func TestAnalyze_TextDocument(t *testing.T) {
	svc := newTestService()
	report := "Patient has diabetes. Fasting glucose: 180 mg/dL."

	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{
		Filename: "report.txt",
		Data:     []byte(report),
		Seed:     seedPtr(42),
	}))
	require.NoError(t, err)
	msg := resp.Msg

	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err, "id should be a uuid")

	require.NotNil(t, msg.Extracted)
	assert.Equal(t, extraction.KindText, msg.Extracted.Kind)
	assert.False(t, msg.Extracted.Placeholder)
	assert.Equal(t, 180.0, msg.Extracted.Numeric[extraction.FieldGlucose])

	assert.Equal(t, []string{"Diabetes"}, msg.Conditions)
	assert.True(t, msg.Diet.RestrictedFoods.Has("sugar"))
	assert.Nil(t, msg.Risk, "risk needs every feature")

	assert.Equal(t, mealplan.GroupDiabetes, msg.WeeklyMealPlan.Group)
	assert.Equal(t, mealplan.Vegetarian, msg.WeeklyMealPlan.Preference)
	assert.Len(t, msg.WeeklyMealPlan.Days, mealplan.DefaultDays)
	assert.Equal(t, uint64(42), msg.Seed)
}

func TestAnalyze_ManualTextWithMeasurements(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{
		Text: "Routine check.",
		Attributes: diet.Attributes{
			Measurements: extraction.NumericFields{
				extraction.FieldAge:           54,
				extraction.FieldGlucose:       150,
				extraction.FieldCholesterol:   210,
				extraction.FieldBloodPressure: 130,
				extraction.FieldBMI:           27,
			},
			DietType: "vegan",
		},
		Days: 3,
		Seed: seedPtr(1),
	}))
	require.NoError(t, err)
	msg := resp.Msg

	assert.Nil(t, msg.Extracted)
	assert.Equal(t, []string{"Diabetes", "High Cholesterol"}, msg.Conditions)
	require.NotNil(t, msg.Risk)
	assert.Equal(t, risk.Abnormal, msg.Risk.Label)
	assert.Equal(t, "fallback", msg.Risk.Source)
	assert.Equal(t, []string{extraction.FieldGlucose}, msg.Risk.Flags)

	assert.Equal(t, mealplan.GroupBoth, msg.WeeklyMealPlan.Group)
	assert.Equal(t, mealplan.Vegan, msg.WeeklyMealPlan.Preference)
	assert.Len(t, msg.WeeklyMealPlan.Days, 3)
}

func TestAnalyze_TypedValuesOverrideDocument(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{
		Filename: "labs.txt",
		Data:     []byte("Glucose: 90"),
		Attributes: diet.Attributes{
			Measurements: extraction.NumericFields{extraction.FieldGlucose: 140},
		},
		Seed: seedPtr(3),
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Diabetes"}, resp.Msg.Conditions)
}

func TestAnalyze_SameSeedSamePlan(t *testing.T) {
	svc := newTestService()
	req := func() *connect.Request[AnalyzeRequest] {
		return connect.NewRequest(&AnalyzeRequest{
			Text:       "high cholesterol noted",
			Preference: "Non-Vegetarian",
			Seed:       seedPtr(99),
		})
	}

	first, err := svc.Analyze(context.Background(), req())
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req())
	require.NoError(t, err)

	assert.Equal(t, first.Msg.WeeklyMealPlan, second.Msg.WeeklyMealPlan)
	assert.NotEqual(t, first.Msg.ID, second.Msg.ID)
}

func TestAnalyze_EmptyInputIsGeneralHealth(t *testing.T) {
	svc := newTestService(WithSeedSource(func() uint64 { return 7 }))

	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{}))
	require.NoError(t, err)

	assert.Equal(t, diet.GeneralHealthDefault().Condition, resp.Msg.Diet.Condition)
	assert.Empty(t, resp.Msg.Diet.RestrictedFoods)
	assert.Equal(t, mealplan.GroupGeneral, resp.Msg.WeeklyMealPlan.Group)
	assert.Equal(t, uint64(7), resp.Msg.Seed)
}

func TestPlanInputErrors(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		name string
		req  *AnalyzeRequest
	}{
		{name: "unknown preference", req: &AnalyzeRequest{Preference: "pescatarian"}},
		{name: "too many days", req: &AnalyzeRequest{Days: 9}},
		{name: "too few days", req: &AnalyzeRequest{Days: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestExtract_EmptyData(t *testing.T) {
	svc := newTestService()
	_, err := svc.Extract(context.Background(), connect.NewRequest(&ExtractRequest{Filename: "x.pdf"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestExtract_MissingColumnCSV(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Extract(context.Background(), connect.NewRequest(&ExtractRequest{
		Filename: "labs.csv",
		Data:     []byte("age,glucose\n40,101\n"),
	}))
	require.NoError(t, err)
	assert.Equal(t, extraction.PlaceholderCSVMissingColumn, resp.Msg.Text)
	assert.True(t, resp.Msg.Placeholder)
	assert.Equal(t, map[string]string{"age": "40", "glucose": "101"}, resp.Msg.Row)
}

func TestGenerateMealPlan(t *testing.T) {
	svc := newTestService(WithDefaultDays(5))
	resp, err := svc.GenerateMealPlan(context.Background(), connect.NewRequest(&GenerateMealPlanRequest{
		HasCholesterol: true,
		Preference:     "omnivore",
		Seed:           seedPtr(5),
	}))
	require.NoError(t, err)
	assert.Equal(t, mealplan.GroupCholesterol, resp.Msg.Plan.Group)
	assert.Equal(t, mealplan.NonVegetarian, resp.Msg.Plan.Preference)
	assert.Len(t, resp.Msg.Plan.Days, 5)
}

type stubOCRHealth struct {
	resp *extraction.RemoteHealthResponse
	err  error
}

func (s stubOCRHealth) HealthCheck(context.Context) (*extraction.RemoteHealthResponse, error) {
	return s.resp, s.err
}

func TestHealth(t *testing.T) {
	t.Run("no remote OCR", func(t *testing.T) {
		resp, err := newTestService().Health(context.Background(), connect.NewRequest(&HealthRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "disabled", resp.Msg.OCR)
	})

	t.Run("remote OCR up", func(t *testing.T) {
		svc := newTestService(WithOCRHealth(stubOCRHealth{
			resp: &extraction.RemoteHealthResponse{Status: "ok", Version: "2.0"},
		}))
		resp, err := svc.Health(context.Background(), connect.NewRequest(&HealthRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Msg.OCR)
		assert.Equal(t, "2.0", resp.Msg.OCRVersion)
	})

	t.Run("remote OCR down", func(t *testing.T) {
		svc := newTestService(WithOCRHealth(stubOCRHealth{
			err: &extraction.ExtractionError{Code: extraction.ErrOCRUnavailable, Message: "unreachable"},
		}))
		_, err := svc.Health(context.Background(), connect.NewRequest(&HealthRequest{}))
		assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"empty document", ErrEmptyDocument, connect.CodeInvalidArgument},
		{"ocr timeout", &extraction.ExtractionError{Code: extraction.ErrOCRTimeout, Message: "slow"}, connect.CodeDeadlineExceeded},
		{"invalid document", &extraction.ExtractionError{Code: extraction.ErrInvalidDocument, Message: "bad"}, connect.CodeInvalidArgument},
		{"unknown", errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapError(tt.err).Code())
		})
	}
}
