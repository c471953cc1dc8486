package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/catalog.json
var seedJSON []byte

// seedData mirrors the layout of data/catalog.json.
type seedData struct {
	Version     int          `json:"version"`
	Concepts    []Concept    `json:"concepts"`
	Questions   []Question   `json:"questions"`
	Assessments []Assessment `json:"assessments"`
	Mentors     []Mentor     `json:"mentors"`
	Resources   []Resource   `json:"resources"`
}

func init() {
	d, err := loadSeed(seedJSON)
	if err != nil {
		// The seed is compiled into the binary; a bad seed is a build defect.
		panic(fmt.Sprintf("catalog: %v", err))
	}
	idx = buildIndex(d)
}

// loadSeed validates raw against the catalog schema, decodes it and runs
// the structural checks.
func loadSeed(raw []byte) (seedData, error) {
	if err := validateDocument(raw); err != nil {
		return seedData{}, err
	}
	var d seedData
	if err := json.Unmarshal(raw, &d); err != nil {
		return seedData{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := validateSeed(d); err != nil {
		return seedData{}, err
	}
	return d, nil
}
