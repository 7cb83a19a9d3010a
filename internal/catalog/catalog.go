// Package catalog owns the static content: the district catalog and the quiz
// question bank. Both ship embedded as YAML and can be overridden from disk.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed districts.yaml
var districtsYAML []byte

//go:embed quiz.yaml
var quizYAML []byte

// District is one catalog entry a user can affiliate with. Referenced by ID
// only; the progress record never embeds the entry itself.
type District struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Question is one quiz bank entry: four options, one correct index.
type Question struct {
	Text    string   `yaml:"q"`
	Answers []string `yaml:"a"`
	Correct int      `yaml:"correct"`
}

// Districts returns the district catalog, from path when given, otherwise
// the embedded default.
func Districts(path string) ([]District, error) {
	raw := districtsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read districts: %w", err)
		}
		raw = b
	}
	var list []District
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse districts: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("district catalog is empty")
	}
	return list, nil
}

// QuizBank returns the question bank, from path when given, otherwise the
// embedded default. Every entry must have four answers and a valid correct
// index; the session picker assumes at least five entries.
func QuizBank(path string) ([]Question, error) {
	raw := quizYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read quiz bank: %w", err)
		}
		raw = b
	}
	var bank []Question
	if err := yaml.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("parse quiz bank: %w", err)
	}
	if len(bank) < 5 {
		return nil, fmt.Errorf("quiz bank has %d questions, need at least 5", len(bank))
	}
	for i, q := range bank {
		if len(q.Answers) != 4 {
			return nil, fmt.Errorf("question %d has %d answers, want 4", i, len(q.Answers))
		}
		if q.Correct < 0 || q.Correct >= len(q.Answers) {
			return nil, fmt.Errorf("question %d has correct index %d out of range", i, q.Correct)
		}
	}
	return bank, nil
}

// DistrictByID is a pure lookup over the catalog. Returns nil when the id is
// unknown or empty.
func DistrictByID(list []District, id string) *District {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
