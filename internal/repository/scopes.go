package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// porTenant restricts a query to one tenant. Every repository method applies
// it; there is no unscoped read path.
func porTenant(tenantID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// paraActualizar adds SELECT ... FOR UPDATE. Dialects without row locks
// (sqlite) ignore the clause.
func paraActualizar(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// paginar normalises page/limit the same way for every list endpoint.
func paginar(page, limit, defLimit, maxLimit int) (offset, lim int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defLimit
	}
	return (page - 1) * limit, limit
}
