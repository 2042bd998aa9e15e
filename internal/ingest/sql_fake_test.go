package ingest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// scriptedSQL answers QueryRow through a function so tests can return ids
// that depend on the arguments.
type scriptedSQL struct {
	row      func(query string, args []any) []any
	rows     map[string][][]any
	execTag  string
	execErr  error
	execs    []scriptedCall
	queryRow []scriptedCall
}

type scriptedCall struct {
	query string
	args  []any
}

func (s *scriptedSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, scriptedCall{query: query, args: args})
	if s.execErr != nil {
		return pgconn.CommandTag{}, s.execErr
	}
	return pgconn.NewCommandTag(s.execTag), nil
}

func (s *scriptedSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.queryRow = append(s.queryRow, scriptedCall{query: query, args: args})
	var values []any
	if s.row != nil {
		values = s.row(query, args)
	}
	return scriptedRow{values: values}
}

func (s *scriptedSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	return &scriptedRows{data: s.rows[query]}, nil
}

type scriptedRow struct {
	values []any
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.values == nil {
		return pgx.ErrNoRows
	}
	return assign(dest, r.values)
}

type scriptedRows struct {
	data [][]any
	idx  int
}

func (r *scriptedRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *scriptedRows) Scan(dest ...any) error { return assign(dest, r.data[r.idx-1]) }

func (r *scriptedRows) Err() error { return nil }

func (r *scriptedRows) Close() {}

func (r *scriptedRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *scriptedRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *scriptedRows) Values() ([]any, error) { return nil, fmt.Errorf("not supported") }

func (r *scriptedRows) RawValues() [][]byte { return nil }

func (r *scriptedRows) Conn() *pgx.Conn { return nil }

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("unexpected scan args: got %d want %d", len(dest), len(values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(values[i]))
	}
	return nil
}
