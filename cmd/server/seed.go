package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

type seedYAML struct {
	Tests []seedTest `yaml:"tests"`
}

type seedTest struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Description string         `yaml:"description"`
	Questions   []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Label         string   `yaml:"label"`
	Kind          string   `yaml:"kind"`
	MinValue      *int     `yaml:"minValue"`
	MaxValue      *int     `yaml:"maxValue"`
	Options       []string `yaml:"options"`
	IsRequired    bool     `yaml:"isRequired"`
	OrderIndex    int      `yaml:"orderIndex"`
	DimensionCode string   `yaml:"dimensionCode"`
	BusinessCode  string   `yaml:"businessCode"`
	IsReversed    bool     `yaml:"isReversed"`
}

// seedTestsFromYAML installs template tests for one organization at startup.
// Already-present tests are not deduplicated; the seed is meant for fresh
// environments.
func seedTestsFromYAML(ctx domain.Context, tests usecase.TestService, path, orgID string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("seed file not found: %s", path)
		}
		return err
	}
	var doc seedYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("yaml parse: %w", err)
	}
	if len(doc.Tests) == 0 {
		return fmt.Errorf("no tests to seed in %s", path)
	}
	for _, st := range doc.Tests {
		name := strings.TrimSpace(st.Name)
		if name == "" {
			continue
		}
		t, err := tests.Create(ctx, usecase.CreateTestInput{
			OrgID:       orgID,
			Name:        name,
			Type:        st.Type,
			Description: st.Description,
			CreatedBy:   "seed",
		})
		if err != nil {
			return fmt.Errorf("seed test %q: %w", name, err)
		}
		for _, sq := range st.Questions {
			_, err := tests.AddQuestion(ctx, domain.TestQuestion{
				TestID:        t.ID,
				Label:         sq.Label,
				Kind:          sq.Kind,
				MinValue:      sq.MinValue,
				MaxValue:      sq.MaxValue,
				Options:       sq.Options,
				IsRequired:    sq.IsRequired,
				OrderIndex:    sq.OrderIndex,
				DimensionCode: sq.DimensionCode,
				BusinessCode:  sq.BusinessCode,
				IsReversed:    sq.IsReversed,
			})
			if err != nil {
				return fmt.Errorf("seed question for %q: %w", name, err)
			}
		}
		slog.Info("seeded template test", slog.String("name", name), slog.String("test_id", t.ID))
	}
	return nil
}
