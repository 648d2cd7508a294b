package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
	"github.com/google/uuid"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperror.ErrInvalidInput)
}

// Opt is a single slot of an Update shape. Set reports whether the caller
// supplied the field at all, so a JSON null on a nullable column (T is a
// pointer) clears it while an absent key leaves it untouched.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a set slot holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Null returns a set slot that clears a nullable column.
func Null[T any]() Opt[*T] {
	return Opt[*T]{Set: true}
}

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o Opt[T]) put(cols map[string]any, column string) {
	if o.Set {
		cols[column] = o.Value
	}
}

func (o Opt[T]) apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// timeOrZero leaves server-defaulted timestamps zero so GORM fills them.
func timeOrZero(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Time{}
}

func uuidOrNil(id *uuid.UUID) uuid.UUID {
	if id != nil {
		return *id
	}
	return uuid.Nil
}

// notNullID and notNullTime reject a set slot holding the zero value of a
// NOT NULL column.
func notNullID(o Opt[uuid.UUID], column string) error {
	if o.Set && o.Value == uuid.Nil {
		return invalid("%s cannot be empty", column)
	}
	return nil
}

func notNullTime(o Opt[time.Time], column string) error {
	if o.Set && o.Value.IsZero() {
		return invalid("%s cannot be empty", column)
	}
	return nil
}

func nonNegative(v *int) bool {
	return v == nil || *v >= 0
}
