// Package store runs typed queries against tables declared in package schema.
//
//	events, err := store.From(db, schema.Default.Tables.Events).
//		Gte(schema.Default.Tables.Events.Col.EventDate, from).
//		Order(schema.Default.Tables.Events.Col.EventDate, false).
//		Select(ctx)
//
// Filters and ordering only accept columns of the table's own row type.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

var ErrMissingFilter = fmt.Errorf("update and delete need at least one filter: %w", apperror.ErrBadRequest)

type Query[R any, I schema.Insertable[R], U schema.Patch[R], C any] struct {
	db     *gorm.DB
	table  schema.Table[R, I, U, C]
	where  []clause.Expression
	orders []clause.OrderByColumn
	limit  int
}

func From[R any, I schema.Insertable[R], U schema.Patch[R], C any](db *gorm.DB, table schema.Table[R, I, U, C]) *Query[R, I, U, C] {
	return &Query[R, I, U, C]{db: db, table: table}
}

func column[R any](c schema.Column[R]) clause.Column {
	return clause.Column{Name: c.Name()}
}

// Eq filters on c = v. A nil v matches NULL.
func (q *Query[R, I, U, C]) Eq(c schema.Column[R], v any) *Query[R, I, U, C] {
	q.where = append(q.where, clause.Eq{Column: column(c), Value: v})
	return q
}

func (q *Query[R, I, U, C]) In(c schema.Column[R], values ...any) *Query[R, I, U, C] {
	q.where = append(q.where, clause.IN{Column: column(c), Values: values})
	return q
}

func (q *Query[R, I, U, C]) Gte(c schema.Column[R], v any) *Query[R, I, U, C] {
	q.where = append(q.where, clause.Gte{Column: column(c), Value: v})
	return q
}

func (q *Query[R, I, U, C]) Lte(c schema.Column[R], v any) *Query[R, I, U, C] {
	q.where = append(q.where, clause.Lte{Column: column(c), Value: v})
	return q
}

func (q *Query[R, I, U, C]) Order(c schema.Column[R], ascending bool) *Query[R, I, U, C] {
	q.orders = append(q.orders, clause.OrderByColumn{Column: column(c), Desc: !ascending})
	return q
}

// Limit caps the rows a Select returns. Zero means no limit.
func (q *Query[R, I, U, C]) Limit(n int) *Query[R, I, U, C] {
	q.limit = n
	return q
}

func (q *Query[R, I, U, C]) base(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx).Table(q.table.QualifiedName())
}

func (q *Query[R, I, U, C]) filtered(ctx context.Context) *gorm.DB {
	tx := q.base(ctx)
	for _, expr := range q.where {
		tx = tx.Where(expr)
	}
	return tx
}

func (q *Query[R, I, U, C]) ordered(ctx context.Context) *gorm.DB {
	tx := q.filtered(ctx)
	for _, o := range q.orders {
		tx = tx.Order(o)
	}
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}
	return tx
}

// Select returns the matching rows, never nil.
func (q *Query[R, I, U, C]) Select(ctx context.Context) ([]R, error) {
	rows := make([]R, 0)
	if err := q.ordered(ctx).Find(&rows).Error; err != nil {
		return nil, q.mapError(err)
	}
	return rows, nil
}

// Single returns the first matching row or apperror.ErrNotFound.
func (q *Query[R, I, U, C]) Single(ctx context.Context) (R, error) {
	var row R
	if err := q.ordered(ctx).Take(&row).Error; err != nil {
		return row, q.mapError(err)
	}
	return row, nil
}

func (q *Query[R, I, U, C]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.filtered(ctx).Model(new(R)).Count(&n).Error; err != nil {
		return 0, q.mapError(err)
	}
	return n, nil
}

// Insert validates in, creates its row and returns it with server-generated
// fields filled in.
func (q *Query[R, I, U, C]) Insert(ctx context.Context, in I) (R, error) {
	row := in.Row()
	if err := in.Validate(); err != nil {
		return row, err
	}
	if err := q.base(ctx).Create(&row).Error; err != nil {
		return row, q.mapError(err)
	}
	return row, nil
}

// InsertIgnore is Insert with ON CONFLICT DO NOTHING. It reports whether a
// row was written.
func (q *Query[R, I, U, C]) InsertIgnore(ctx context.Context, in I) (bool, error) {
	row := in.Row()
	if err := in.Validate(); err != nil {
		return false, err
	}
	res := q.base(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, q.mapError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Update writes the set fields of patch to every filtered row and returns
// the rows as stored. An empty patch writes nothing and returns the rows
// unchanged.
func (q *Query[R, I, U, C]) Update(ctx context.Context, patch U) ([]R, error) {
	if len(q.where) == 0 {
		return nil, ErrMissingFilter
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cols := patch.Columns()
	if len(cols) == 0 {
		return q.Select(ctx)
	}

	rows := make([]R, 0)
	if err := q.filtered(ctx).Model(&rows).Clauses(clause.Returning{}).Updates(cols).Error; err != nil {
		return nil, q.mapError(err)
	}
	return rows, nil
}

// UpdateOne is Update for a filter that selects a single row; no match is
// apperror.ErrNotFound.
func (q *Query[R, I, U, C]) UpdateOne(ctx context.Context, patch U) (R, error) {
	var zero R
	rows, err := q.Update(ctx, patch)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("%s: %w", q.table.Name(), apperror.ErrNotFound)
	}
	return rows[0], nil
}

// Delete removes the filtered rows and returns how many were removed.
func (q *Query[R, I, U, C]) Delete(ctx context.Context) (int64, error) {
	if len(q.where) == 0 {
		return 0, ErrMissingFilter
	}
	res := q.filtered(ctx).Delete(new(R))
	if res.Error != nil {
		return 0, q.mapError(res.Error)
	}
	return res.RowsAffected, nil
}

func (q *Query[R, I, U, C]) mapError(err error) error {
	return mapError(q.table.Name(), err)
}

func mapError(relation string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", relation, apperror.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", relation, apperror.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: referenced row does not exist: %w", relation, apperror.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", relation, err)
	}
}

// Rpc calls a declared server function and scans its single result.
func Rpc[A schema.Args, T any](ctx context.Context, db *gorm.DB, fn schema.Function[A, T], args A) (T, error) {
	var out T
	if err := db.WithContext(ctx).Raw(fn.CallSQL(), args.Params()...).Row().Scan(&out); err != nil {
		return out, mapError(fn.Name(), err)
	}
	return out, nil
}
