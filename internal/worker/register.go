package worker

import (
	"wallet-import/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, logger *logrus.Logger) {
	imported := NewAccountsImportedHandler(repository.NewAccountRepository(db), redis, logger)
	mux.HandleFunc(TypeAccountsImported, imported.Handle)
}
