// Package schema is the static contract between the service and its
// Postgres schema: every table with its Row/Insert/Update shapes, columns and
// foreign keys, the enums and the callable server functions.
//
// Tables are resolved by Go field selection (schema.Default.Tables.Events),
// never by string, so a misspelled table or a column taken from another
// table fails to compile.
package schema

import (
	"fmt"
	"strings"
)

// Insertable is an Insert shape: it builds the Row to create, leaving
// server-defaulted fields zero.
type Insertable[R any] interface {
	Validate() error
	Row() R
}

// Patch is an Update shape: only the fields it sets are written.
type Patch[R any] interface {
	Validate() error
	Columns() map[string]any
	Apply(row *R)
}

type Relationship struct {
	ForeignKeyName     string
	Columns            []string
	IsOneToOne         bool
	ReferencedRelation string
	ReferencedColumns  []string
}

// Column names a column of the table whose row type is R.
type Column[R any] struct {
	name string
}

func col[R any](name string) Column[R] {
	return Column[R]{name: name}
}

func (c Column[R]) Name() string {
	return c.name
}

// Meta is the untyped description of a table.
type Meta struct {
	schema        string
	name          string
	columns       []string
	relationships []Relationship
}

func (m Meta) Schema() string {
	return m.schema
}

func (m Meta) Name() string {
	return m.name
}

// QualifiedName returns "schema.table".
func (m Meta) QualifiedName() string {
	return m.schema + "." + m.name
}

func (m Meta) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

func (m Meta) HasColumn(name string) bool {
	for _, c := range m.columns {
		if c == name {
			return true
		}
	}
	return false
}

func (m Meta) Relationships() []Relationship {
	out := make([]Relationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

// Table binds a table's Row, Insert and Update shapes and its typed column
// set C.
type Table[R any, I Insertable[R], U Patch[R], C any] struct {
	Meta
	Col C
}

func newTable[R any, I Insertable[R], U Patch[R], C any](schema, name string, cols C, order []Column[R], rels ...Relationship) Table[R, I, U, C] {
	names := make([]string, len(order))
	for i, c := range order {
		names[i] = c.name
	}
	return Table[R, I, U, C]{
		Meta: Meta{
			schema:        schema,
			name:          name,
			columns:       names,
			relationships: rels,
		},
		Col: cols,
	}
}

// Enum describes a Postgres enum backed by the Go string type E.
type Enum[E ~string] struct {
	schema string
	name   string
	values []E
}

func (e Enum[E]) Name() string {
	return e.name
}

func (e Enum[E]) QualifiedName() string {
	return e.schema + "." + e.name
}

func (e Enum[E]) Values() []E {
	out := make([]E, len(e.values))
	copy(out, e.values)
	return out
}

// CreateSQL returns an idempotent CREATE TYPE statement.
func (e Enum[E]) CreateSQL() string {
	labels := make([]string, len(e.values))
	for i, v := range e.values {
		labels[i] = "'" + strings.ReplaceAll(string(v), "'", "''") + "'"
	}
	return fmt.Sprintf(
		"DO $$ BEGIN CREATE TYPE %s AS ENUM (%s); EXCEPTION WHEN duplicate_object THEN NULL; END $$;",
		e.QualifiedName(), strings.Join(labels, ", "),
	)
}

// Args is the argument list of a server function call, in declaration order.
type Args interface {
	Params() []any
}

type Param struct {
	Name string
	Type string
}

// Function describes a callable server function taking A and returning T.
type Function[A Args, T any] struct {
	schema  string
	name    string
	params  []Param
	returns string
}

func (f Function[A, T]) Name() string {
	return f.name
}

func (f Function[A, T]) QualifiedName() string {
	return f.schema + "." + f.name
}

func (f Function[A, T]) Params() []Param {
	out := make([]Param, len(f.params))
	copy(out, f.params)
	return out
}

func (f Function[A, T]) Returns() string {
	return f.returns
}

// CallSQL returns "SELECT schema.fn(?::type, ...)" with one placeholder per
// parameter.
func (f Function[A, T]) CallSQL() string {
	holders := make([]string, len(f.params))
	for i, p := range f.params {
		holders[i] = "?::" + p.Type
	}
	return fmt.Sprintf("SELECT %s(%s)", f.QualifiedName(), strings.Join(holders, ", "))
}
