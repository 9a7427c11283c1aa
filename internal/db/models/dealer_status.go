package models

import "time"

// DealerStatus is the portal's write-through copy of a dealer's account
// status. The backend owns the authoritative value; the portal records every
// status mutation it forwards so the account gate can evaluate suspension on
// each request without a backend round trip. This is what makes a
// suspension take effect on the dealer's next action rather than at the
// next login.
type DealerStatus struct {
	// ID is the unique identifier for the record.
	ID uint64 `gorm:"primaryKey"`
	// DealerID is the backend's dealer identifier.
	DealerID string `gorm:"uniqueIndex;size:64;not null"`
	// Status is the account status ("active" or "inactive").
	Status string `gorm:"type:varchar(20);not null"`
	// Reason is the optional free-text suspension reason. It is carried to
	// the denial page verbatim and never interpreted.
	Reason string `gorm:"size:255"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the DealerStatus model.
func (DealerStatus) TableName() string {
	return "dealer_statuses"
}
