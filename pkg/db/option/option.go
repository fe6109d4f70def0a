// Package option carries composable query modifiers for the generic store.
package option

import "gorm.io/gorm"

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type orderBy struct {
	clause string
}

func (o orderBy) Apply(db *gorm.DB) *gorm.DB { return db.Order(o.clause) }

// OrderBy appends an ORDER BY clause.
func OrderBy(clause string) QueryOption { return orderBy{clause: clause} }

type limit struct {
	n int
}

func (l limit) Apply(db *gorm.DB) *gorm.DB { return db.Limit(l.n) }

// Limit caps the number of returned rows.
func Limit(n int) QueryOption { return limit{n: n} }
