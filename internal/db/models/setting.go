// Package models contains database model definitions for the portal's own
// storage: portal-wide settings and the write-through dealer status records.
// All warranty data lives in the backend and is never persisted here.
package models

// Setting represents a portal configuration setting stored in the database.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}
