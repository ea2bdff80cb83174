package postgres

import (
	"gorm.io/gorm"
)

// sharedDB gives every sub-repository the same optional-transaction behavior.
type sharedDB struct {
	db *gorm.DB
}

func (s sharedDB) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
