package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	clauseStrengthUpdate = "UPDATE"
	clauseStrengthShare  = "SHARE"
)

// withLock adds a row-lock clause on dialects that support one. SQLite
// serializes writers at the database level and rejects FOR UPDATE.
func withLock(tx *gorm.DB, strength string) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: strength})
}
