// Package export renders a recommendation and meal plan as JSON, plain text
// and fixed-size page images.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/mealplan"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is the JSON export shape.
type Document struct {
	Diet           diet.Recommendation `json:"diet"`
	WeeklyMealPlan []mealplan.Day      `json:"weekly_meal_plan"`
}

// NewDocument pairs a recommendation with a plan.
func NewDocument(rec diet.Recommendation, plan mealplan.Plan) Document {
	days := plan.Days
	if days == nil {
		days = []mealplan.Day{}
	}
	return Document{Diet: rec, WeeklyMealPlan: days}
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// RenderText returns a human-readable rendering of the document.
func RenderText(doc Document) string {
	var sb strings.Builder
	rec := doc.Diet
	// A Caser keeps state and must not be shared between goroutines.
	title := cases.Title(language.English)

	sb.WriteString("Diet Recommendation\n")
	sb.WriteString("===================\n")
	fmt.Fprintf(&sb, "Condition: %s\n", rec.Condition)
	fmt.Fprintf(&sb, "Allowed foods: %s\n", joinFoods(rec.AllowedFoods))
	fmt.Fprintf(&sb, "Restricted foods: %s\n", joinFoods(rec.RestrictedFoods))
	fmt.Fprintf(&sb, "Diet plan: %s\n", rec.DietPlan)
	fmt.Fprintf(&sb, "Lifestyle advice: %s\n", rec.LifestyleAdvice)

	if len(doc.WeeklyMealPlan) == 0 {
		return sb.String()
	}

	sb.WriteString("\nMeal Plan\n")
	sb.WriteString("=========\n")
	for i, d := range doc.WeeklyMealPlan {
		fmt.Fprintf(&sb, "\nDay %d\n", i+1)
		for _, slot := range []struct{ name, value string }{
			{"breakfast", d.Breakfast},
			{"lunch", d.Lunch},
			{"snack", d.Snack},
			{"dinner", d.Dinner},
		} {
			fmt.Fprintf(&sb, "  %s: %s\n", title.String(slot.name), slot.value)
		}
	}
	return sb.String()
}

func joinFoods(fs diet.FoodSet) string {
	if len(fs) == 0 {
		return "none"
	}
	return strings.Join(fs.Sorted(), ", ")
}
