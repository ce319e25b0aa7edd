package repository

import (
	"context"
	"testing"

	"tnrsteel/internal/errors"
	"tnrsteel/internal/testutil"
)

func TestFindByExactName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesStockRepository(db)
	ctx := context.Background()

	if err := repo.IncrementQuantity(ctx, "Rebar 12mm", 80, 250); err != nil {
		t.Fatalf("seeding stock: %v", err)
	}

	item, err := repo.FindByExactName(ctx, "Rebar 12mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 80 || item.UnitPrice != 250 {
		t.Errorf("unexpected item: %+v", item)
	}

	_, err = repo.FindByExactName(ctx, "Copper Wire")
	if _, ok := errors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError for unknown item, got %v", err)
	}
}

func TestFindAll_OrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesStockRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Flat Bar", "Angle Iron", "Rebar 12mm"} {
		if err := repo.IncrementQuantity(ctx, name, 10, 100); err != nil {
			t.Fatalf("seeding stock: %v", err)
		}
	}

	items, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"Angle Iron", "Flat Bar", "Rebar 12mm"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestDecrementIfAvailable_Guard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesStockRepository(db)
	ctx := context.Background()

	if err := repo.IncrementQuantity(ctx, "Rebar 12mm", 50, 250); err != nil {
		t.Fatalf("seeding stock: %v", err)
	}

	applied, err := repo.DecrementIfAvailable(ctx, "Rebar 12mm", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applied {
		t.Fatal("expected decrement within quantity to apply")
	}

	// 20 left; asking for 30 must be refused and leave the row untouched.
	applied, err = repo.DecrementIfAvailable(ctx, "Rebar 12mm", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied {
		t.Fatal("expected decrement past quantity to be refused")
	}

	item, err := repo.FindByExactName(ctx, "Rebar 12mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", item.Quantity)
	}
}

func TestDecrementIfAvailable_MissingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesStockRepository(db)

	applied, err := repo.DecrementIfAvailable(context.Background(), "Copper Wire", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied {
		t.Error("expected decrement of missing row to be refused")
	}
}

func TestIncrementQuantity_UpsertsExistingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSalesStockRepository(db)
	ctx := context.Background()

	if err := repo.IncrementQuantity(ctx, "Rebar 12mm", 50, 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.IncrementQuantity(ctx, "Rebar 12mm", 25, 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := repo.FindByExactName(ctx, "Rebar 12mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 75 {
		t.Errorf("expected quantity 75 after upsert, got %d", item.Quantity)
	}
}
