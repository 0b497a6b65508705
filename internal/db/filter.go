package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultLimit is the page size used when a caller leaves the limit unset.
const DefaultLimit = 100

// Page is an offset/limit window. There is no upper bound on Limit.
type Page struct {
	Skip  int
	Limit int
}

// Normalize returns p with a non-negative Skip and a positive Limit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return q.Offset(p.Skip).Limit(p.Limit)
}

// ReadingFilter selects readings. Nil fields are not applied.
// Start and End are inclusive.
type ReadingFilter struct {
	SensorID *uint
	Start    *time.Time
	End      *time.Time
}

// Predicates returns the filter as a conjunction.
func (f ReadingFilter) Predicates() Conjunction {
	return And(SensorIs(f.SensorID), TimestampFrom(f.Start), TimestampUntil(f.End))
}

// Predicate is a single optional SQL condition over the readings table.
// The zero value matches everything and is dropped by And.
type Predicate struct {
	sql  string
	args []any
}

// Clause returns the SQL fragment and its bind arguments.
func (p Predicate) Clause() (string, []any) { return p.sql, p.args }

// Empty reports whether p constrains nothing.
func (p Predicate) Empty() bool { return p.sql == "" }

// SensorIs matches readings of one sensor.
func SensorIs(id *uint) Predicate {
	if id == nil {
		return Predicate{}
	}
	return Predicate{sql: "sensor_id = ?", args: []any{*id}}
}

// TimestampFrom matches readings taken at or after t.
func TimestampFrom(t *time.Time) Predicate {
	if t == nil {
		return Predicate{}
	}
	return Predicate{sql: "timestamp >= ?", args: []any{t.UTC()}}
}

// TimestampUntil matches readings taken at or before t.
func TimestampUntil(t *time.Time) Predicate {
	if t == nil {
		return Predicate{}
	}
	return Predicate{sql: "timestamp <= ?", args: []any{t.UTC()}}
}

// Conjunction is a list of non-empty predicates combined with AND.
type Conjunction []Predicate

// And keeps the non-empty predicates in order.
func And(preds ...Predicate) Conjunction {
	out := make(Conjunction, 0, len(preds))
	for _, p := range preds {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// SQL renders the conjunction as one WHERE body. An empty conjunction
// renders as "".
func (c Conjunction) SQL() (string, []any) {
	parts := make([]string, 0, len(c))
	var args []any
	for _, p := range c {
		parts = append(parts, p.sql)
		args = append(args, p.args...)
	}
	return strings.Join(parts, " AND "), args
}

// Apply adds every predicate to q; gorm joins chained Where calls with AND.
func (c Conjunction) Apply(q *gorm.DB) *gorm.DB {
	for _, p := range c {
		q = q.Where(p.sql, p.args...)
	}
	return q
}
