package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// assign copies vals into Scan destinations. A nil value models SQL NULL and,
// like pgx, only scans into nullable destinations.
func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(vals), len(dest))
	}
	for i, d := range dest {
		if vals[i] == nil {
			switch p := d.(type) {
			case *pgtype.Text:
				*p = pgtype.Text{}
			case *pgtype.Int4:
				*p = pgtype.Int4{}
			case *pgtype.Bool:
				*p = pgtype.Bool{}
			default:
				return fmt.Errorf("cannot scan NULL into %T", d)
			}
			continue
		}
		switch p := d.(type) {
		case *pgtype.Text:
			*p = pgtype.Text{String: vals[i].(string), Valid: true}
		case *pgtype.Int4:
			*p = pgtype.Int4{Int32: int32(vals[i].(int)), Valid: true}
		case *pgtype.Bool:
			*p = pgtype.Bool{Bool: vals[i].(bool), Valid: true}
		case *int64:
			*p = vals[i].(int64)
		case *int:
			*p = vals[i].(int)
		case *string:
			*p = vals[i].(string)
		case *bool:
			*p = vals[i].(bool)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

type rowStub struct {
	vals []any
	err  error
}

func (r rowStub) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

// rowsStub implements pgx.Rows over in-memory tuples.
type rowsStub struct {
	data [][]any
	pos  int
	err  error
}

func (r *rowsStub) Close()                                       {}
func (r *rowsStub) Err() error                                   { return r.err }
func (r *rowsStub) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rowsStub) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rowsStub) Values() ([]any, error)                       { return r.data[r.pos-1], nil }
func (r *rowsStub) RawValues() [][]byte                          { return nil }
func (r *rowsStub) Conn() *pgx.Conn                              { return nil }

func (r *rowsStub) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *rowsStub) Scan(dest ...any) error { return assign(r.data[r.pos-1], dest) }

// poolStub routes queries by the table they read.
type poolStub struct {
	employees [][]any
	skills    [][]any
	work      [][]any
	row       rowStub
	queryErr  error
	queries   []string
}

func (p *poolStub) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	p.queries = append(p.queries, sql)
	return p.row
}

func (p *poolStub) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	p.queries = append(p.queries, sql)
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	switch {
	case strings.Contains(sql, "JOIN skills"):
		return &rowsStub{data: p.skills}, nil
	case strings.Contains(sql, "FROM work_experiences"):
		return &rowsStub{data: p.work}, nil
	default:
		return &rowsStub{data: p.employees}, nil
	}
}

var errBoom = errors.New("boom")

func empRow(id int64, first, last, position, bio string, years, level int) []any {
	return []any{id, first, last, "", first + "@corp.example", position, "R&D", years, bio, 0, level}
}
