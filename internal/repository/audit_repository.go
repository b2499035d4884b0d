package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record writes one audit row for an administrative mutation. Checkout's
// system-initiated writes never come through here.
func (r *AuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	oldData, err := marshalNullable(entry.OldData)
	if err != nil {
		return &domain.PersistenceError{Op: "marshal audit old data", Err: err}
	}
	newData, err := marshalNullable(entry.NewData)
	if err != nil {
		return &domain.PersistenceError{Op: "marshal audit new data", Err: err}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, table_name, row_id, action, old_data, new_data, action_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.ActorID, entry.TableName, entry.RowID, entry.Action,
		oldData, newData, entry.ActionTime)
	if err != nil {
		return &domain.PersistenceError{Op: "insert audit entry", Err: err}
	}
	return nil
}

func marshalNullable(v interface{}) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
