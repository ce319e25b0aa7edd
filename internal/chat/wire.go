package chat

import (
	"database/sql"

	"go.uber.org/zap"

	"tnrsteel/internal/chat/service"
	invrepo "tnrsteel/internal/inventory/repository"
	salesrepo "tnrsteel/internal/sales/repository"
	stockrepo "tnrsteel/internal/stock/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	responder := service.NewResponder(
		stockrepo.NewMySQLProductsRepository(db),
		invrepo.NewMySQLSalesStockRepository(db),
		salesrepo.NewMySQLSalesRepository(db),
		logger,
	)
	return NewController(responder, logger)
}
