package materials

import (
	"database/sql"

	"go.uber.org/zap"

	"tnrsteel/internal/materials/repository"
	"tnrsteel/internal/materials/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLMaterialsRepository(db)
	svc := service.NewService(repo)
	return NewController(svc, logger)
}
