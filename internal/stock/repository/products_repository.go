package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

type MySQLProductsRepository struct {
	db *sql.DB
}

func NewMySQLProductsRepository(db *sql.DB) *MySQLProductsRepository {
	return &MySQLProductsRepository{db: db}
}

func (r *MySQLProductsRepository) Insert(ctx context.Context, p domain.Product) (uint, error) {
	query := `
		INSERT INTO Products (productName, quantity, unitPrice)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), unitPrice = VALUES(unitPrice)
	`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Quantity, p.UnitPrice)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLProductsRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	query := `
		SELECT id, productName, quantity, unitPrice, createdAt, updatedAt
		FROM Products
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductsRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, productName, quantity, unitPrice, createdAt, updatedAt
		FROM Products
		WHERE productName = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by name: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductsRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, productName, quantity, unitPrice, createdAt, updatedAt
		FROM Products
		ORDER BY productName
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// DecrementIfAvailable guards the subtraction in the statement, same as the
// sales-stock decrement.
func (r *MySQLProductsRepository) DecrementIfAvailable(ctx context.Context, name string, quantity int) (bool, error) {
	query := `
		UPDATE Products
		SET quantity = quantity - ?
		WHERE productName = ? AND quantity >= ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, name, quantity)
	if err != nil {
		return false, fmt.Errorf("decrementing product quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
