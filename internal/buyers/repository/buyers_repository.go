package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

type MySQLBuyersRepository struct {
	db *sql.DB
}

func NewMySQLBuyersRepository(db *sql.DB) *MySQLBuyersRepository {
	return &MySQLBuyersRepository{db: db}
}

func (r *MySQLBuyersRepository) Insert(ctx context.Context, b domain.Buyer) (uint, error) {
	query := `INSERT INTO Buyers (buyerName, company, email, phone, address) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, b.Name, b.Company, b.Email, b.Phone, b.Address)
	if err != nil {
		return 0, fmt.Errorf("inserting buyer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLBuyersRepository) FindByID(ctx context.Context, id uint) (*domain.Buyer, error) {
	query := `
		SELECT id, buyerName, company, email, phone, address, createdAt, updatedAt
		FROM Buyers
		WHERE id = ?
	`

	var b domain.Buyer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Company, &b.Email, &b.Phone, &b.Address,
		&b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("buyer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying buyer by id: %w", err)
	}

	return &b, nil
}

func (r *MySQLBuyersRepository) FindAll(ctx context.Context) ([]domain.Buyer, error) {
	query := `
		SELECT id, buyerName, company, email, phone, address, createdAt, updatedAt
		FROM Buyers
		ORDER BY buyerName
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying buyers: %w", err)
	}
	defer rows.Close()

	var buyers []domain.Buyer
	for rows.Next() {
		var b domain.Buyer
		err := rows.Scan(
			&b.ID, &b.Name, &b.Company, &b.Email, &b.Phone, &b.Address,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning buyer row: %w", err)
		}
		buyers = append(buyers, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buyer rows: %w", err)
	}

	return buyers, nil
}

func (r *MySQLBuyersRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Buyers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting buyer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("buyer with id %d not found", id))
	}

	return nil
}
