package schedule

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/pickpool/go/internal/models"
)

//go:embed template.yaml
var defaultTemplate []byte

// Template is the fixed season layout the generator materializes.
type Template struct {
	DefaultDays int    `yaml:"default_days"`
	GapDays     int    `yaml:"gap_days"`
	Tiers       []Tier `yaml:"tiers"`
}

// Tier groups the periods of one period type. An optional tier is only
// generated while its period type is flagged active.
type Tier struct {
	PeriodType models.PeriodTypeID `yaml:"period_type"`
	Optional   bool                `yaml:"optional"`
	Periods    []PeriodSpec        `yaml:"periods"`
}

type PeriodSpec struct {
	Name     string `yaml:"name"`
	Contests int    `yaml:"contests"`
	Winner   bool   `yaml:"winner"`
	Days     int    `yaml:"days"`
	Activate bool   `yaml:"activate"`
}

// DefaultTemplate returns the embedded reference calendar.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(defaultTemplate)
}

// LoadTemplate reads a template file. An empty path means the default.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return DefaultTemplate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule template: %w", err)
	}
	return ParseTemplate(data)
}

func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse schedule template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Template) Validate() error {
	if t.DefaultDays <= 0 {
		return fmt.Errorf("schedule template: default_days must be positive")
	}
	if t.GapDays < 0 {
		return fmt.Errorf("schedule template: gap_days must not be negative")
	}
	if len(t.Tiers) == 0 {
		return fmt.Errorf("schedule template: no tiers")
	}
	for _, tier := range t.Tiers {
		if tier.PeriodType == 0 {
			return fmt.Errorf("schedule template: tier without period_type")
		}
		for _, p := range tier.Periods {
			if p.Name == "" {
				return fmt.Errorf("schedule template: %s period without name", tier.PeriodType)
			}
			if p.Contests < 1 {
				return fmt.Errorf("schedule template: %q needs at least one contest", p.Name)
			}
			if p.Days < 0 {
				return fmt.Errorf("schedule template: %q has negative days", p.Name)
			}
		}
	}
	return nil
}

// days returns the length of p in days.
func (t *Template) days(p PeriodSpec) int {
	if p.Days > 0 {
		return p.Days
	}
	return t.DefaultDays
}
