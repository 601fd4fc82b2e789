package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/castlemilk/mydiet/internal/export"
	"github.com/castlemilk/mydiet/internal/risk"
	"github.com/castlemilk/mydiet/internal/service"
	"github.com/fatih/color"
)

var (
	heading  = color.New(color.FgCyan, color.Bold).SprintFunc()
	good     = color.New(color.FgGreen).SprintFunc()
	bad      = color.New(color.FgRed).SprintFunc()
	muted    = color.New(color.Faint).SprintFunc()
	boldText = color.New(color.Bold).SprintFunc()
)

func printReport(w io.Writer, resp *service.AnalyzeResponse) {
	fmt.Fprintf(w, "%s %s\n", heading("Analysis"), muted(resp.ID))

	if x := resp.Extracted; x != nil {
		fmt.Fprintf(w, "%s %s\n", boldText("Source:"), x.Kind)
		if x.Placeholder {
			fmt.Fprintf(w, "  %s\n", bad(x.Text))
		}
		for k, v := range x.Numeric {
			fmt.Fprintf(w, "  %s = %g\n", k, v)
		}
	}

	rec := resp.Diet
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", boldText("Condition:"), heading(rec.Condition))
	fmt.Fprintf(w, "%s %s\n", boldText("Allowed:"), good(strings.Join(rec.AllowedFoods.Sorted(), ", ")))
	fmt.Fprintf(w, "%s %s\n", boldText("Restricted:"), bad(strings.Join(rec.RestrictedFoods.Sorted(), ", ")))
	fmt.Fprintf(w, "%s %s\n", boldText("Diet plan:"), rec.DietPlan)
	fmt.Fprintf(w, "%s %s\n", boldText("Lifestyle:"), rec.LifestyleAdvice)

	if r := resp.Risk; r != nil {
		label := good(string(r.Label))
		if r.Label == risk.Abnormal {
			label = bad(string(r.Label))
		}
		fmt.Fprintf(w, "%s %s %s\n", boldText("Risk:"), label, muted("("+r.Source+")"))
	}

	plan := resp.WeeklyMealPlan
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s, %s %s\n", heading("Meal plan"), plan.Group, plan.Preference, muted(fmt.Sprintf("seed %d", resp.Seed)))
	for i, d := range plan.Days {
		fmt.Fprintf(w, "%s\n", boldText(fmt.Sprintf("Day %d", i+1)))
		fmt.Fprintf(w, "  breakfast: %s\n  lunch:     %s\n  snack:     %s\n  dinner:    %s\n", d.Breakfast, d.Lunch, d.Snack, d.Dinner)
	}
}

func writeExports(resp *service.AnalyzeResponse) error {
	if *jsonOut == "" && *textOut == "" && *pagesDir == "" {
		return nil
	}
	doc := export.NewDocument(resp.Diet, resp.WeeklyMealPlan)

	if *jsonOut != "" {
		f, err := os.Create(*jsonOut)
		if err != nil {
			return err
		}
		if err := export.WriteJSON(f, doc); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	text := export.RenderText(doc)
	if *textOut != "" {
		if err := os.WriteFile(*textOut, []byte(text), 0o644); err != nil {
			return err
		}
	}

	if *pagesDir != "" {
		pages, err := export.RenderPages(text, export.DefaultPageLayout())
		if err != nil {
			return err
		}
		if err := os.MkdirAll(*pagesDir, 0o755); err != nil {
			return err
		}
		for i, page := range pages {
			name := filepath.Join(*pagesDir, fmt.Sprintf("page-%02d.png", i+1))
			if err := os.WriteFile(name, page, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
