package domain

import "time"

// AuditFields holds standard audit information for persisted records.
// LastUpdated fields only ever move for the reversal status marker; line
// items and amounts are immutable after posting.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
