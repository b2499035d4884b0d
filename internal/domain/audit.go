package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditEntry records an administrative mutation. System-initiated writes
// (checkout) deliberately do not produce entries; only actions taken by an
// administrator are audited.
type AuditEntry struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	ActorID    *uuid.UUID  `json:"actor_id,omitempty" db:"actor_id"`
	TableName  string      `json:"table_name" db:"table_name"`
	RowID      uuid.UUID   `json:"row_id" db:"row_id"`
	Action     string      `json:"action" db:"action"`
	OldData    interface{} `json:"old_data,omitempty"`
	NewData    interface{} `json:"new_data,omitempty"`
	ActionTime time.Time   `json:"action_time" db:"action_time"`
}
