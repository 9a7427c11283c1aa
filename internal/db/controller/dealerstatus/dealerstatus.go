// Package dealerstatus provides operations on the locally mirrored dealer
// account status. The mirror is written in the same request that mutates the
// backend, so the account gate sees a suspension on the very next request.
package dealerstatus

import (
	"errors"

	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/db/models"
)

const dealerQueryPattern = "dealer_id = ?"

var (
	// ErrDealerStatusNotFound is returned when no status is recorded for a dealer.
	ErrDealerStatusNotFound = errors.New("dealer status not found")
	// ErrDealerIDEmpty is returned when the dealer identifier is empty.
	ErrDealerIDEmpty = errors.New("dealer id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the recorded account status for a dealer.
func Get(db *gorm.DB, dealerID string) (*models.DealerStatus, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if dealerID == "" {
		return nil, ErrDealerIDEmpty
	}

	var status models.DealerStatus
	result := db.Where(dealerQueryPattern, dealerID).First(&status)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDealerStatusNotFound
		}
		return nil, result.Error
	}

	return &status, nil
}

// GetAccess resolves the account gate input for a dealer. A dealer with no
// recorded status is treated as active; only an explicit suspension blocks.
func GetAccess(db *gorm.DB, dealerID string) (authz.AccountStatus, string) {
	status, err := Get(db, dealerID)
	if err != nil {
		return authz.AccountStatusActive, ""
	}

	parsed, ok := authz.ParseAccountStatus(status.Status)
	if !ok {
		return authz.AccountStatusInactive, status.Reason
	}

	return parsed, status.Reason
}

// Set creates or updates the recorded status for a dealer (upsert operation).
func Set(db *gorm.DB, dealerID string, status authz.AccountStatus, reason string) (*models.DealerStatus, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if dealerID == "" {
		return nil, ErrDealerIDEmpty
	}

	var record models.DealerStatus
	result := db.Where(dealerQueryPattern, dealerID).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		record = models.DealerStatus{
			DealerID: dealerID,
			Status:   string(status),
			Reason:   reason,
		}

		if result = db.Create(&record); result.Error != nil {
			return nil, result.Error
		}

		return &record, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	record.Status = string(status)
	record.Reason = reason

	if result = db.Save(&record); result.Error != nil {
		return nil, result.Error
	}

	return &record, nil
}

// Delete removes the recorded status for a dealer, returning them to the
// implicit active state.
func Delete(db *gorm.DB, dealerID string) error {
	if db == nil {
		return ErrDBNil
	}
	if dealerID == "" {
		return ErrDealerIDEmpty
	}

	result := db.Where(dealerQueryPattern, dealerID).Delete(&models.DealerStatus{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDealerStatusNotFound
	}

	return nil
}
