package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/errors"
)

type MySQLSalesRepository struct {
	db *sql.DB
}

func NewMySQLSalesRepository(db *sql.DB) *MySQLSalesRepository {
	return &MySQLSalesRepository{db: db}
}

// Insert persists the sale header and its line items in one transaction.
// A duplicate invoiceId surfaces as the driver's 1062 error for the caller
// to handle.
func (r *MySQLSalesRepository) Insert(ctx context.Context, sale domain.Sale) (uint, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning sale transaction: %w", err)
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	saleQuery := `INSERT INTO Sales (invoiceId, buyerId, totalAmount, saleDate) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, saleQuery, sale.InvoiceID, sale.BuyerID, sale.TotalAmount, sale.SaleDate)
	if err != nil {
		return 0, fmt.Errorf("inserting sale: %w", err)
	}

	saleID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	itemQuery := `INSERT INTO SaleItems (saleId, itemName, quantity, price, total) VALUES (?, ?, ?, ?, ?)`
	for _, item := range sale.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, saleID, item.ItemName, item.Quantity, item.Price, item.Total); err != nil {
			return 0, fmt.Errorf("inserting sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sale transaction: %w", err)
	}

	return uint(saleID), nil
}

func (r *MySQLSalesRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Sale, error) {
	query := `
		SELECT id, invoiceId, buyerId, totalAmount, saleDate
		FROM Sales
		WHERE invoiceId = ?
	`

	var sale domain.Sale
	err := r.db.QueryRowContext(ctx, query, invoiceID).Scan(
		&sale.ID, &sale.InvoiceID, &sale.BuyerID, &sale.TotalAmount, &sale.SaleDate,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("Invoice not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale by invoice id: %w", err)
	}

	items, err := r.findItems(ctx, []uint{sale.ID})
	if err != nil {
		return nil, err
	}
	sale.Items = items[sale.ID]

	return &sale, nil
}

// FindAll returns every sale newest-first, line items included.
func (r *MySQLSalesRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT id, invoiceId, buyerId, totalAmount, saleDate
		FROM Sales
		ORDER BY saleDate DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	var ids []uint
	for rows.Next() {
		var sale domain.Sale
		err := rows.Scan(&sale.ID, &sale.InvoiceID, &sale.BuyerID, &sale.TotalAmount, &sale.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("scanning sale row: %w", err)
		}
		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
	}

	return sales, nil
}

func (r *MySQLSalesRepository) findItems(ctx context.Context, saleIDs []uint) (map[uint][]domain.SaleLineItem, error) {
	items := make(map[uint][]domain.SaleLineItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return items, nil
	}

	placeholders := ""
	args := make([]interface{}, len(saleIDs))
	for i, id := range saleIDs {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT saleId, itemName, quantity, price, total
		FROM SaleItems
		WHERE saleId IN (%s)
		ORDER BY id`,
		placeholders,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID uint
		var item domain.SaleLineItem
		err := rows.Scan(&saleID, &item.ItemName, &item.Quantity, &item.Price, &item.Total)
		if err != nil {
			return nil, fmt.Errorf("scanning sale item row: %w", err)
		}
		items[saleID] = append(items[saleID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale item rows: %w", err)
	}

	return items, nil
}
