package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Loader is the sink for parsed CFB records.
type Loader interface {
	Load(ctx context.Context, records []Record) (int64, error)
}

// Recipients resolves CFB recipient names to individual ids.
type Recipients interface {
	Match(name string) (string, bool)
}

// CFBImport reads a CFB export, links recipients to individuals and hands
// batches to a Loader.
type CFBImport struct {
	Loader     Loader
	Recipients Recipients
	Logger     zerolog.Logger
	BatchSize  int
}

// CFBReport summarises one import run.
type CFBReport struct {
	Rows      int
	Inserted  int64
	Matched   int
	Unmatched []string // distinct recipient names with no individual, sorted
}

const defaultBatchSize = 5000

// Run imports every row of r.
func (c *CFBImport) Run(ctx context.Context, r io.Reader) (*CFBReport, error) {
	reader, err := NewCFBReader(r)
	if err != nil {
		return nil, err
	}
	size := c.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	report := &CFBReport{}
	unmatched := make(map[string]struct{})
	batch := make([]Record, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.Loader.Load(ctx, batch)
		if err != nil {
			return err
		}
		report.Inserted += n
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, err
		}
		report.Rows++

		if rec.RecipientName != "" {
			if id, ok := c.Recipients.Match(rec.RecipientName); ok {
				rec.RecipientID = id
				report.Matched++
			} else {
				unmatched[rec.RecipientName] = struct{}{}
			}
		}

		batch = append(batch, rec)
		if len(batch) >= size {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := flush(); err != nil {
		return report, err
	}

	for name := range unmatched {
		report.Unmatched = append(report.Unmatched, name)
	}
	sort.Strings(report.Unmatched)

	c.Logger.Info().
		Int("rows", report.Rows).
		Int64("inserted", report.Inserted).
		Int("matched", report.Matched).
		Int("unmatched", len(report.Unmatched)).
		Msg("cfb import finished")
	return report, nil
}

// WriteUnmatched writes one unmatched recipient name per line to path.
func WriteUnmatched(path string, names []string) error {
	body := strings.Join(names, "\n")
	if body != "" {
		body += "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write unmatched names: %w", err)
	}
	return nil
}
