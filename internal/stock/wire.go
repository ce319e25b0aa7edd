package stock

import (
	"database/sql"

	"go.uber.org/zap"

	invrepo "tnrsteel/internal/inventory/repository"
	"tnrsteel/internal/stock/repository"
	"tnrsteel/internal/stock/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	products := repository.NewMySQLProductsRepository(db)
	salesStock := invrepo.NewMySQLSalesStockRepository(db)
	svc := service.NewStockService(products, salesStock, logger)
	return NewController(svc, logger)
}
