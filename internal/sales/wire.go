package sales

import (
	"database/sql"

	"go.uber.org/zap"

	"tnrsteel/internal/config"
	invrepo "tnrsteel/internal/inventory/repository"
	"tnrsteel/internal/inventory/resolver"
	"tnrsteel/internal/sales/controller"
	salesrepo "tnrsteel/internal/sales/repository"
	"tnrsteel/internal/sales/service"
	"tnrsteel/internal/sales/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.SalesController {
	stockRepo := invrepo.NewMySQLSalesStockRepository(db)
	salesRepo := salesrepo.NewMySQLSalesRepository(db)
	stockResolver := resolver.NewResolver(stockRepo, logger)

	checkoutSvc := service.NewCheckoutService(
		salesRepo,
		stockResolver,
		stockRepo,
		logger,
		cfg.Checkout.CallTimeout,
	)

	useCase := usecase.NewCheckoutUseCase(checkoutSvc, stockResolver, salesRepo, logger)

	return controller.NewSalesController(useCase, logger)
}
