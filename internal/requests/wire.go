package requests

import (
	"database/sql"

	"go.uber.org/zap"

	"tnrsteel/internal/requests/repository"
	"tnrsteel/internal/requests/service"
)

type Module struct {
	Material   *Controller
	Production *Controller
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	materialSvc := service.NewRequestService(repository.NewMySQLMaterialRequestRepository(db), logger)
	productionSvc := service.NewRequestService(repository.NewMySQLProductionRequestRepository(db), logger)

	return &Module{
		Material:   NewController(materialSvc, "material_id", logger),
		Production: NewController(productionSvc, "product_name", logger),
	}
}
