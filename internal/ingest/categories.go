package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// CategorySeed is the YAML file that defines browse categories:
//
//	categories:
//	  - name: City Council Members
//	    associations:
//	      - NYC City Council
type CategorySeed struct {
	Categories []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	Name         string   `yaml:"name"`
	Associations []string `yaml:"associations"`
}

// ParseCategorySeed decodes and checks a seed file.
func ParseCategorySeed(r io.Reader) (*CategorySeed, error) {
	var seed CategorySeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode category seed: %w", err)
	}
	seen := make(map[string]bool, len(seed.Categories))
	for i, c := range seed.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("category %q listed twice", name)
		}
		seen[name] = true
		seed.Categories[i].Name = name
	}
	return &seed, nil
}

// SeedResult counts what SeedCategories touched.
type SeedResult struct {
	Categories   int
	Associations int64 // associations moved into a category
}

// SeedCategories upserts each category and files the named associations
// under it. Associations that do not exist yet are ignored.
func SeedCategories(ctx context.Context, sql infra.SQLExecutor, seed *CategorySeed) (SeedResult, error) {
	var res SeedResult
	for _, c := range seed.Categories {
		var id string
		if err := sql.QueryRow(ctx, sqlinline.QUpsertCategory, c.Name).Scan(&id); err != nil {
			return res, fmt.Errorf("upsert category %q: %w", c.Name, err)
		}
		res.Categories++
		for _, description := range c.Associations {
			tag, err := sql.Exec(ctx, sqlinline.QAssignAssociationCategory, id, description)
			if err != nil {
				return res, fmt.Errorf("assign %q to %q: %w", description, c.Name, err)
			}
			res.Associations += tag.RowsAffected()
		}
	}
	return res, nil
}
