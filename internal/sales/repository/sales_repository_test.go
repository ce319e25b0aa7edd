package repository

import (
	"context"
	"testing"
	"time"

	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
	"tnrsteel/internal/infrastructure/mysql"
	"tnrsteel/internal/testutil"
)

func saleFixture(invoiceID string, saleDate time.Time) domain.Sale {
	return domain.Sale{
		InvoiceID:   invoiceID,
		BuyerID:     "buyer-1",
		TotalAmount: 13500,
		SaleDate:    saleDate,
		Items: []domain.SaleLineItem{
			{ItemName: "Rebar 12mm", Quantity: 50, Price: 250, Total: 12500},
			{ItemName: "Angle Iron", Quantity: 10, Price: 100, Total: 1000},
		},
	}
}

func TestInsertAndFindByInvoiceID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesRepository(db)
	ctx := context.Background()

	saleDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, saleFixture("INV-1741608000000-17", saleDate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero sale id")
	}

	sale, err := repo.FindByInvoiceID(ctx, "INV-1741608000000-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.BuyerID != "buyer-1" || sale.TotalAmount != 13500 {
		t.Errorf("unexpected sale: %+v", sale)
	}
	if len(sale.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(sale.Items))
	}
	if sale.Items[0].ItemName != "Rebar 12mm" || sale.Items[0].Quantity != 50 {
		t.Errorf("unexpected first item: %+v", sale.Items[0])
	}
}

func TestFindByInvoiceID_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesRepository(db)

	_, err := repo.FindByInvoiceID(context.Background(), "INV-0-0")

	nf, ok := apperrors.IsNotFoundError(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Message != "Invoice not found" {
		t.Errorf("unexpected message: %q", nf.Message)
	}
}

func TestInsert_DuplicateInvoiceID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesRepository(db)
	ctx := context.Background()

	saleDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, saleFixture("INV-1741608000000-17", saleDate)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.Insert(ctx, saleFixture("INV-1741608000000-17", saleDate))
	if err == nil {
		t.Fatal("expected duplicate invoice to fail")
	}
	if !mysql.IsDuplicateKey(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
}

func TestInsert_DuplicateLeavesNoPartialRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesRepository(db)
	ctx := context.Background()

	saleDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, saleFixture("INV-1741608000000-17", saleDate)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Insert(ctx, saleFixture("INV-1741608000000-17", saleDate)); err == nil {
		t.Fatal("expected duplicate invoice to fail")
	}

	var itemCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM SaleItems`).Scan(&itemCount); err != nil {
		t.Fatalf("counting sale items: %v", err)
	}
	if itemCount != 2 {
		t.Errorf("expected only the first sale's 2 items, got %d", itemCount)
	}
}

func TestFindAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	invoices := []struct {
		id   string
		date time.Time
	}{
		{"INV-1741608000000-1", base},
		{"INV-1741611600000-2", base.Add(time.Hour)},
		{"INV-1741615200000-3", base.Add(2 * time.Hour)},
	}
	for _, inv := range invoices {
		if _, err := repo.Insert(ctx, saleFixture(inv.id, inv.date)); err != nil {
			t.Fatalf("inserting %s: %v", inv.id, err)
		}
	}

	sales, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(sales))
	}
	want := []string{"INV-1741615200000-3", "INV-1741611600000-2", "INV-1741608000000-1"}
	for i, invoiceID := range want {
		if sales[i].InvoiceID != invoiceID {
			t.Errorf("sales[%d] = %q, want %q", i, sales[i].InvoiceID, invoiceID)
		}
	}
	for i := range sales {
		if len(sales[i].Items) != 2 {
			t.Errorf("sales[%d] missing line items", i)
		}
	}
}
