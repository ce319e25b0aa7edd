package buyers

import (
	"database/sql"

	"go.uber.org/zap"

	"tnrsteel/internal/buyers/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	return NewController(repository.NewMySQLBuyersRepository(db), logger)
}
