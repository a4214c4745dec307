// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
)

// ByTenant is a GORM scope that restricts a query to one tenant's rows.
// Every tenant-owned table carries a tenant_id column, and repositories apply
// this scope rather than repeating the predicate.
//
// Example usage:
//
//	tx.Model(&PoolModel{}).Scopes(db.ByTenant(tenantID)).Find(&rows)
func ByTenant(tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ByPool is a GORM scope that restricts a query to one pool's rows.
func ByPool(poolID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("pool_id = ?", poolID)
	}
}

// Paginate applies offset/limit pagination with 1-based page numbers.
// Non-positive page or pageSize values fall back to the first page of 20.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
