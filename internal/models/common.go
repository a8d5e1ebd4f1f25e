package models

import "time"

// AuditFields are the audit columns shared by every mutable table. The field list must match
// domain.AuditFields, which mappers convert to directly.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
