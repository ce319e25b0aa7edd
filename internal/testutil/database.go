package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a MySQL at
// localhost:3306 with a database named 'tnrsteel_test'; tests are skipped
// when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/tnrsteel_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"SaleItems", "Sales", "SalesStock", "Products",
		"Materials", "MaterialRequests", "ProductionRequests", "Buyers",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createSalesStockTable := `
	CREATE TABLE IF NOT EXISTS SalesStock (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		sp_name VARCHAR(255) NOT NULL UNIQUE,
		sp_quantity INT NOT NULL DEFAULT 0,
		unit_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createSalesTable := `
	CREATE TABLE IF NOT EXISTS Sales (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		invoiceId VARCHAR(64) NOT NULL UNIQUE,
		buyerId VARCHAR(64) NOT NULL,
		totalAmount DECIMAL(12,2) NOT NULL,
		saleDate DATETIME NOT NULL,
		INDEX idx_sale_date (saleDate)
	)`

	createSaleItemsTable := `
	CREATE TABLE IF NOT EXISTS SaleItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		saleId INT UNSIGNED NOT NULL,
		itemName VARCHAR(255) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		FOREIGN KEY (saleId) REFERENCES Sales(id) ON DELETE CASCADE,
		INDEX idx_sale (saleId)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productName VARCHAR(255) NOT NULL UNIQUE,
		quantity INT NOT NULL DEFAULT 0,
		unitPrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createMaterialsTable := `
	CREATE TABLE IF NOT EXISTS Materials (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		invoiceId VARCHAR(64) NOT NULL,
		materialName VARCHAR(255) NOT NULL,
		supplierName VARCHAR(255) NOT NULL,
		materialQuantity INT NOT NULL,
		lotPrice DECIMAL(12,2) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createRequestTable := func(name string) string {
		return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		itemRef VARCHAR(255) NOT NULL,
		requestQuantity INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		requestedBy VARCHAR(64) NOT NULL DEFAULT '',
		decidedBy VARCHAR(64),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`, name)
	}

	createBuyersTable := `
	CREATE TABLE IF NOT EXISTS Buyers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		buyerName VARCHAR(255) NOT NULL,
		company VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(150) NOT NULL,
		phone VARCHAR(30),
		address VARCHAR(255),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"SalesStock", createSalesStockTable},
		{"Sales", createSalesTable},
		{"SaleItems", createSaleItemsTable},
		{"Products", createProductsTable},
		{"Materials", createMaterialsTable},
		{"MaterialRequests", createRequestTable("MaterialRequests")},
		{"ProductionRequests", createRequestTable("ProductionRequests")},
		{"Buyers", createBuyersTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
