package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vighnaharta/internal/domain"
)

// seedFile is the YAML layout of CIRCLES_SEED_FILE:
//
//	circles:
//	  - name: Airtel
//	    code: airtel
//	    sort_order: 1
type seedFile struct {
	Circles []seedCircle `yaml:"circles"`
}

type seedCircle struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Code      string `yaml:"code"`
	IsActive  *bool  `yaml:"is_active"` // defaults to true
	SortOrder int    `yaml:"sort_order"`
}

// LoadSeedFile parses and validates a circle seed file
func LoadSeedFile(path string) ([]domain.Circle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]domain.Circle, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	circles := make([]domain.Circle, 0, len(f.Circles))
	seen := make(map[string]bool, len(f.Circles))
	for i, sc := range f.Circles {
		code, err := domain.NewCircleCode(sc.Code)
		if err != nil {
			return nil, fmt.Errorf("seed circle %d: %w", i, err)
		}
		if sc.Name == "" {
			return nil, fmt.Errorf("seed circle %d: %w", i, domain.WrapValidationError("circle name", fmt.Errorf("name cannot be empty")))
		}
		if seen[code.String()] {
			return nil, fmt.Errorf("seed circle %d: %w", i, domain.WrapValidationError("circle code", fmt.Errorf("duplicate code %q", code)))
		}
		seen[code.String()] = true

		c := NewCircle(sc.Name, code.String(), sc.SortOrder)
		if sc.ID != "" {
			if _, err := uuid.Parse(sc.ID); err != nil {
				return nil, fmt.Errorf("seed circle %d: %w", i, domain.WrapValidationError("circle id", err))
			}
			c.ID = sc.ID
		}
		if sc.IsActive != nil {
			c.IsActive = *sc.IsActive
		}
		circles = append(circles, *c)
	}

	return circles, nil
}

// Seed upserts circles by code
func (db *DB) Seed(ctx context.Context, circles []domain.Circle) error {
	for i := range circles {
		if err := db.UpsertCircle(ctx, &circles[i]); err != nil {
			return fmt.Errorf("seed circle %q: %w", circles[i].Code, err)
		}
	}
	slog.InfoContext(ctx, "seeded recharge circles", "count", len(circles))
	return nil
}
