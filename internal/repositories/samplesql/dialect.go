// Package samplesql implements the sample repository on database/sql. All SQL
// is generated from the field registry; the Dialect seam covers the places
// where Postgres (production) and SQLite (local/tests) genuinely differ:
// placeholder syntax, array storage and case-insensitive matching.
package samplesql

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect abstracts the engine-specific corners of the generated SQL.
// Postgres stores string-array fields as text[]; SQLite stores them as JSON
// text and uses json_each for element conditions.
type Dialect interface {
	// Name returns the database/sql driver name this dialect targets.
	Name() string

	// Placeholder returns the 1-based numbered placeholder. Numbered forms
	// are used on both engines so a single bound value can back multiple
	// conditions.
	Placeholder(n int) string

	// ArrayValue converts a coerced string array into a driver-bindable value.
	ArrayValue(values []string) (interface{}, error)

	// ScanArray converts a raw scanned column value back into a string array.
	ScanArray(src interface{}) ([]string, error)

	// ArrayContains returns a condition that is true when the bound value is
	// an element of the stored array column.
	ArrayContains(column, placeholder string) string

	// ArrayLike returns a condition that is true when any element of the
	// stored array column matches the bound pattern case-insensitively.
	ArrayLike(column, placeholder string) string

	// StringLike returns a case-insensitive pattern condition on a text column.
	StringLike(column, placeholder string) string

	// IsUniqueViolation reports whether err is a uniqueness constraint failure.
	IsUniqueViolation(err error) bool
}

// PostgresDialect targets the managed Postgres instance behind the deployed API.
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "pgx" }

func (PostgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (PostgresDialect) ArrayValue(values []string) (interface{}, error) {
	// pgx binds []string to text[] natively.
	return values, nil
}

func (PostgresDialect) ScanArray(src interface{}) ([]string, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case string:
		return parsePostgresTextArray(v)
	case []byte:
		return parsePostgresTextArray(string(v))
	default:
		return nil, fmt.Errorf("cannot scan %T as text array", src)
	}
}

func (PostgresDialect) ArrayContains(column, placeholder string) string {
	return fmt.Sprintf("%s = ANY(%s)", placeholder, column)
}

func (PostgresDialect) ArrayLike(column, placeholder string) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS elem WHERE elem ILIKE %s)", column, placeholder)
}

func (PostgresDialect) StringLike(column, placeholder string) string {
	return fmt.Sprintf("%s ILIKE %s", column, placeholder)
}

func (PostgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// SQLiteDialect backs local development and the test suite.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite3" }

func (SQLiteDialect) Placeholder(n int) string { return fmt.Sprintf("?%d", n) }

func (SQLiteDialect) ArrayValue(values []string) (interface{}, error) {
	b, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode array value: %w", err)
	}
	return string(b), nil
}

func (SQLiteDialect) ScanArray(src interface{}) ([]string, error) {
	var raw string
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return nil, fmt.Errorf("cannot scan %T as JSON array", src)
	}
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode array value: %w", err)
	}
	return out, nil
}

func (SQLiteDialect) ArrayContains(column, placeholder string) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = %s)", column, placeholder)
}

func (SQLiteDialect) ArrayLike(column, placeholder string) string {
	// SQLite LIKE is case-insensitive for ASCII by default.
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value LIKE %s)", column, placeholder)
}

func (SQLiteDialect) StringLike(column, placeholder string) string {
	return fmt.Sprintf("%s LIKE %s", column, placeholder)
}

func (SQLiteDialect) IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// parsePostgresTextArray decodes a text[] literal of the form
// {a,b,"c d",NULL} as produced by the text protocol.
func parsePostgresTextArray(lit string) ([]string, error) {
	lit = strings.TrimSpace(lit)
	if lit == "" {
		return nil, nil
	}
	if !strings.HasPrefix(lit, "{") || !strings.HasSuffix(lit, "}") {
		return nil, fmt.Errorf("malformed array literal %q", lit)
	}
	body := lit[1 : len(lit)-1]
	if body == "" {
		return []string{}, nil
	}

	var out []string
	var cur strings.Builder
	inQuotes := false
	escaped := false
	flush := func() {
		s := cur.String()
		cur.Reset()
		if s == "NULL" {
			s = ""
		}
		out = append(out, s)
	}
	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out, nil
}
