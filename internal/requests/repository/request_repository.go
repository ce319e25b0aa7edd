package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

// MySQLRequestRepository serves both requisition tables: material requests
// (itemRef is a material id) and production requests (itemRef is a product
// name). The tables share one shape, so the table name is the only knob.
type MySQLRequestRepository struct {
	db    *sql.DB
	table string
}

func NewMySQLMaterialRequestRepository(db *sql.DB) *MySQLRequestRepository {
	return &MySQLRequestRepository{db: db, table: "MaterialRequests"}
}

func NewMySQLProductionRequestRepository(db *sql.DB) *MySQLRequestRepository {
	return &MySQLRequestRepository{db: db, table: "ProductionRequests"}
}

func (r *MySQLRequestRepository) Insert(ctx context.Context, req domain.Request) (uint, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (itemRef, requestQuantity, status, requestedBy) VALUES (?, ?, ?, ?)`,
		r.table,
	)

	result, err := r.db.ExecContext(ctx, query, req.ItemRef, req.Quantity, req.Status, req.RequestedBy)
	if err != nil {
		return 0, fmt.Errorf("inserting request: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLRequestRepository) FindByID(ctx context.Context, id uint) (*domain.Request, error) {
	query := fmt.Sprintf(`
		SELECT id, itemRef, requestQuantity, status, requestedBy, decidedBy, createdAt, updatedAt
		FROM %s
		WHERE id = ?`,
		r.table,
	)

	var req domain.Request
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.ItemRef, &req.Quantity, &req.Status,
		&req.RequestedBy, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("Request not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying request by id: %w", err)
	}

	return &req, nil
}

func (r *MySQLRequestRepository) FindAll(ctx context.Context) ([]domain.Request, error) {
	query := fmt.Sprintf(`
		SELECT id, itemRef, requestQuantity, status, requestedBy, decidedBy, createdAt, updatedAt
		FROM %s
		ORDER BY createdAt DESC, id DESC`,
		r.table,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var req domain.Request
		err := rows.Scan(
			&req.ID, &req.ItemRef, &req.Quantity, &req.Status,
			&req.RequestedBy, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating request rows: %w", err)
	}

	return requests, nil
}

func (r *MySQLRequestRepository) UpdateStatus(ctx context.Context, id uint, status string, decidedBy string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = ?, decidedBy = ? WHERE id = ?`, r.table)

	// Existence is checked by the caller; rows-affected is not a reliable
	// signal here since re-applying the same status touches zero rows.
	if _, err := r.db.ExecContext(ctx, query, status, decidedBy, id); err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}

	return nil
}

// DeleteIfPending removes the row only while it is still pending; the guard
// lives in the statement so a concurrent approval cannot slip through.
func (r *MySQLRequestRepository) DeleteIfPending(ctx context.Context, id uint) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND status = ?`, r.table)

	result, err := r.db.ExecContext(ctx, query, id, domain.RequestStatusPending)
	if err != nil {
		return false, fmt.Errorf("deleting request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
