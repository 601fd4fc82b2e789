// Command dietctl runs the diet pipeline on a local report and prints the
// recommendation and meal plan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"connectrpc.com/connect"
	"github.com/castlemilk/mydiet/internal/config"
	"github.com/castlemilk/mydiet/internal/diet"
	"github.com/castlemilk/mydiet/internal/diet/eval"
	"github.com/castlemilk/mydiet/internal/extraction"
	"github.com/castlemilk/mydiet/internal/logger"
	"github.com/castlemilk/mydiet/internal/service"
	"github.com/joho/godotenv"
)

var (
	configPath      = flag.String("config", "", "Path to a YAML config file (default $MYDIET_CONFIG)")
	filePath        = flag.String("file", "", "Report to analyze (pdf, png, jpg, txt, csv, xlsx)")
	manualText      = flag.String("text", "", "Report text, used when -file is not set")
	preference      = flag.String("preference", "Vegetarian", "Vegetarian, Non-Vegetarian or Vegan")
	days            = flag.Int("days", 0, "Plan length in days (2-7, 0 uses the config)")
	seed            = flag.Int64("seed", -1, "Seed for the meal plan, -1 derives one from the clock")
	diabetesStatus  = flag.String("diabetes", "", "Diabetes status: No, Yes, Type 1 or Type 2")
	highCholesterol = flag.Bool("high-cholesterol", false, "Patient reports high cholesterol")
	intolerances    = flag.String("intolerances", "", "Comma separated intolerances, e.g. lactose,gluten")
	jsonOut         = flag.String("json-out", "", "Write the JSON export to this file")
	textOut         = flag.String("text-out", "", "Write the plain text export to this file")
	pagesDir        = flag.String("pages-dir", "", "Write the PNG page export into this directory")
	runEval         = flag.Bool("eval", false, "Replay the bundled report fixtures and print rule metrics")
)

func main() {
	flag.Parse()
	loadDotEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configFile(*configPath))
	if err != nil {
		fail("load config: %v", err)
	}
	// Keep stdout for the report.
	logger.InitWithOutput(cfg.Logger.Level, os.Stderr)

	if *runEval {
		if err := evaluate(ctx); err != nil {
			fail("eval: %v", err)
		}
		return
	}

	svc, err := service.NewFromConfig(cfg)
	if err != nil {
		fail("init: %v", err)
	}

	req, err := buildRequest()
	if err != nil {
		fail("%v", err)
	}
	resp, err := svc.Analyze(ctx, connect.NewRequest(req))
	if err != nil {
		fail("analyze: %v", err)
	}

	printReport(os.Stdout, resp.Msg)

	if err := writeExports(resp.Msg); err != nil {
		fail("export: %v", err)
	}
}

// loadDotEnv reads .env (or the given files) without overriding variables
// already set. A missing file is not an error.
func loadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// configFile returns the -config value, or MYDIET_CONFIG when the flag is
// unset. Call it after loadDotEnv so .env can provide the path.
func configFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MYDIET_CONFIG")
}

func buildRequest() (*service.AnalyzeRequest, error) {
	req := &service.AnalyzeRequest{
		Text:       *manualText,
		Preference: *preference,
		Days:       *days,
		Attributes: diet.Attributes{
			DiabetesStatus:  diet.DiabetesStatus(*diabetesStatus),
			HighCholesterol: *highCholesterol,
		},
	}
	for _, item := range strings.Split(*intolerances, ",") {
		if item = strings.TrimSpace(item); item != "" {
			req.Attributes.Intolerances = append(req.Attributes.Intolerances, item)
		}
	}
	if *seed >= 0 {
		s := uint64(*seed)
		req.Seed = &s
	}
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}
		req.Filename = filepath.Base(*filePath)
		req.Data = data
	}
	return req, nil
}

func evaluate(ctx context.Context) error {
	fixtures, err := eval.LoadFixtures()
	if err != nil {
		return err
	}
	segmenter, err := diet.NewSentenceSegmenter()
	if err != nil {
		return err
	}
	x := extraction.NewExtractor()
	engine := diet.NewEngine(segmenter)
	results := eval.RunEval(ctx, map[string]eval.StrategyFunc{
		"pipeline":  eval.PipelineStrategy(x, engine),
		"text-only": eval.TextOnlyStrategy(x, engine),
	}, fixtures)
	eval.PrintSummary(os.Stdout, results)
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dietctl: "+format+"\n", args...)
	os.Exit(1)
}
