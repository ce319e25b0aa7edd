package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

type MySQLSalesStockRepository struct {
	db *sql.DB
}

func NewMySQLSalesStockRepository(db *sql.DB) *MySQLSalesStockRepository {
	return &MySQLSalesStockRepository{db: db}
}

func (r *MySQLSalesStockRepository) FindByExactName(ctx context.Context, name string) (*domain.StockItem, error) {
	query := `
		SELECT id, sp_name, sp_quantity, unit_price, createdAt, updatedAt
		FROM SalesStock
		WHERE sp_name = ?
	`

	var item domain.StockItem
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&item.ID, &item.Name, &item.Quantity, &item.UnitPrice,
		&item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("stock item %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock item by name: %w", err)
	}

	return &item, nil
}

func (r *MySQLSalesStockRepository) FindAll(ctx context.Context) ([]domain.StockItem, error) {
	query := `
		SELECT id, sp_name, sp_quantity, unit_price, createdAt, updatedAt
		FROM SalesStock
		ORDER BY sp_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying stock items: %w", err)
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var item domain.StockItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Quantity, &item.UnitPrice,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock item rows: %w", err)
	}

	return items, nil
}

// DecrementIfAvailable subtracts quantity from the named item in a single
// conditional update, so a concurrent checkout can never drive the quantity
// negative. It returns false when the row is missing or the guard fails.
func (r *MySQLSalesStockRepository) DecrementIfAvailable(ctx context.Context, name string, quantity int) (bool, error) {
	query := `
		UPDATE SalesStock
		SET sp_quantity = sp_quantity - ?
		WHERE sp_name = ? AND sp_quantity >= ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, name, quantity)
	if err != nil {
		return false, fmt.Errorf("decrementing stock quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementQuantity adds quantity to the named item, creating the row when
// the stock issuing path introduces a new sales-channel item.
func (r *MySQLSalesStockRepository) IncrementQuantity(ctx context.Context, name string, quantity int, unitPrice float64) error {
	query := `
		INSERT INTO SalesStock (sp_name, sp_quantity, unit_price)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE sp_quantity = sp_quantity + VALUES(sp_quantity)
	`

	if _, err := r.db.ExecContext(ctx, query, name, quantity, unitPrice); err != nil {
		return fmt.Errorf("incrementing stock quantity: %w", err)
	}

	return nil
}
