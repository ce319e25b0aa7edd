package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

type MySQLMaterialsRepository struct {
	db *sql.DB
}

func NewMySQLMaterialsRepository(db *sql.DB) *MySQLMaterialsRepository {
	return &MySQLMaterialsRepository{db: db}
}

func (r *MySQLMaterialsRepository) Insert(ctx context.Context, m domain.Material) (uint, error) {
	query := `
		INSERT INTO Materials (invoiceId, materialName, supplierName, materialQuantity, lotPrice)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, m.InvoiceID, m.Name, m.SupplierName, m.Quantity, m.LotPrice)
	if err != nil {
		return 0, fmt.Errorf("inserting material: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLMaterialsRepository) FindByID(ctx context.Context, id uint) (*domain.Material, error) {
	query := `
		SELECT id, invoiceId, materialName, supplierName, materialQuantity, lotPrice, createdAt, updatedAt
		FROM Materials
		WHERE id = ?
	`

	var m domain.Material
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.InvoiceID, &m.Name, &m.SupplierName, &m.Quantity, &m.LotPrice,
		&m.CreatedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying material by id: %w", err)
	}

	return &m, nil
}

func (r *MySQLMaterialsRepository) FindAll(ctx context.Context) ([]domain.Material, error) {
	query := `
		SELECT id, invoiceId, materialName, supplierName, materialQuantity, lotPrice, createdAt, updatedAt
		FROM Materials
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		var m domain.Material
		err := rows.Scan(
			&m.ID, &m.InvoiceID, &m.Name, &m.SupplierName, &m.Quantity, &m.LotPrice,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rows: %w", err)
	}

	return materials, nil
}

func (r *MySQLMaterialsRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Materials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", id))
	}

	return nil
}
