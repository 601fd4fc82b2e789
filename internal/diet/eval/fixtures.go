package eval

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/castlemilk/mydiet/internal/extraction"
)

//go:embed fixtures/*
var fixtureFS embed.FS

// Fixture bundles an uploaded report with its ground truth.
type Fixture struct {
	Name        string
	Document    extraction.Document
	GroundTruth *GroundTruth
}

// LoadFixtures loads every embedded ground-truth file and the document it
// points at, ordered by name.
func LoadFixtures() ([]*Fixture, error) {
	entries, err := fixtureFS.ReadDir("fixtures")
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	var fixtures []*Fixture
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		f, err := loadFixture(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("load fixture %q: %w", entry.Name(), err)
		}
		fixtures = append(fixtures, f)
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures, nil
}

func loadFixture(truthFile string) (*Fixture, error) {
	jsonBytes, err := fixtureFS.ReadFile(path.Join("fixtures", truthFile))
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}

	var gt GroundTruth
	if err := json.Unmarshal(jsonBytes, &gt); err != nil {
		return nil, fmt.Errorf("parse ground truth: %w", err)
	}
	if gt.Document == "" {
		return nil, fmt.Errorf("ground truth has no document")
	}

	data, err := fixtureFS.ReadFile(path.Join("fixtures", gt.Document))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return &Fixture{
		Name:        gt.Name,
		Document:    extraction.Document{Name: gt.Document, Data: data},
		GroundTruth: &gt,
	}, nil
}
