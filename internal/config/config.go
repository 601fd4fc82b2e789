// Package config loads the diet backend configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// OCRConfig configures the primary and fallback OCR engines.
type OCRConfig struct {
	TesseractPath string        `yaml:"tesseractPath"` // empty disables the local engine
	RemoteURL     string        `yaml:"remoteURL"`     // empty disables the remote fallback
	APIKey        string        `yaml:"apiKey"`
	Timeout       time.Duration `yaml:"timeout"`
	MinWidth      int           `yaml:"minWidth"`
	Threshold     uint8         `yaml:"threshold"`
}

// ThresholdConfig holds the numeric cut-offs used by the classifier and the
// risk fallback.
type ThresholdConfig struct {
	Glucose         float64 `yaml:"glucose"`
	Cholesterol     float64 `yaml:"cholesterol"`
	RiskCholesterol float64 `yaml:"riskCholesterol"`
	BloodPressure   float64 `yaml:"bloodPressure"`
	BMI             float64 `yaml:"bmi"`
}

// RiskConfig points at the optional prediction model artifact.
type RiskConfig struct {
	ModelPath string `yaml:"modelPath"`
}

// MealPlanConfig controls the schedule length.
type MealPlanConfig struct {
	Days int `yaml:"days"`
}

// LoggerConfig sets the log level.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// Config is the root of the YAML file.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	OCR        OCRConfig       `yaml:"ocr"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Risk       RiskConfig      `yaml:"risk"`
	MealPlan   MealPlanConfig  `yaml:"mealPlan"`
	Logger     LoggerConfig    `yaml:"logger"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8111",
			AllowedOrigins: []string{
				"http://localhost:1234",
				"http://127.0.0.1:1234",
			},
		},
		OCR: OCRConfig{
			TesseractPath: "tesseract",
			Timeout:       15 * time.Second,
			MinWidth:      1000,
			Threshold:     150,
		},
		Thresholds: ThresholdConfig{
			Glucose:         126,
			Cholesterol:     200,
			RiskCholesterol: 240,
			BloodPressure:   140,
			BMI:             30,
		},
		MealPlan: MealPlanConfig{Days: 7},
		Logger:   LoggerConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("TESSERACT_PATH"); v != "" {
		c.OCR.TesseractPath = v
	}
	if v := os.Getenv("OCR_REMOTE_URL"); v != "" {
		c.OCR.RemoteURL = v
	}
	if v := os.Getenv("OCR_API_KEY"); v != "" {
		c.OCR.APIKey = v
	}
	if v := os.Getenv("RISK_MODEL_PATH"); v != "" {
		c.Risk.ModelPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("MEAL_PLAN_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MEAL_PLAN_DAYS: %w", err)
		}
		c.MealPlan.Days = days
	}
	return nil
}

// Validate checks ranges that would otherwise produce nonsense output.
func (c *Config) Validate() error {
	if c.MealPlan.Days < 2 || c.MealPlan.Days > 7 {
		return fmt.Errorf("mealPlan.days must be between 2 and 7, got %d", c.MealPlan.Days)
	}
	t := c.Thresholds
	for name, v := range map[string]float64{
		"glucose":         t.Glucose,
		"cholesterol":     t.Cholesterol,
		"riskCholesterol": t.RiskCholesterol,
		"bloodPressure":   t.BloodPressure,
		"bmi":             t.BMI,
	} {
		if v <= 0 {
			return fmt.Errorf("thresholds.%s must be positive", name)
		}
	}
	if c.OCR.Timeout <= 0 {
		return fmt.Errorf("ocr.timeout must be positive")
	}
	return nil
}
