package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-import/internal/models"
	"wallet-import/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	ImportStatusSynced  = "synced"
	ImportStatusPartial = "partial"

	importStatusTTL = 24 * time.Hour
)

type AccountLookup interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

// AccountsImportedHandler checks that a committed import landed in storage
// and records the outcome for the client to poll.
type AccountsImportedHandler struct {
	accounts AccountLookup
	redis    *redis.Client
	logger   *logrus.Logger
}

func NewAccountsImportedHandler(accounts AccountLookup, redis *redis.Client, logger *logrus.Logger) *AccountsImportedHandler {
	return &AccountsImportedHandler{
		accounts: accounts,
		redis:    redis,
		logger:   logger,
	}
}

func ImportStatusKey(sessionCode string) string {
	return fmt.Sprintf("import:status:%s", sessionCode)
}

func (h *AccountsImportedHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload AccountsImportedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.WithField("session", payload.SessionCode)
	log.Info("Syncing imported accounts")

	verified := 0
	var missing []string
	for _, id := range append(append([]string{}, payload.Created...), payload.Patched...) {
		_, err := h.accounts.FindByID(ctx, id)
		if errors.Is(err, repository.ErrAccountNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up account %s: %w", id, err)
		}
		verified++
	}

	status := ImportStatusSynced
	if len(missing) > 0 {
		status = ImportStatusPartial
		log.WithField("missing", missing).Warn("Imported accounts missing after commit")
	}

	key := ImportStatusKey(payload.SessionCode)
	pipe := h.redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"status":    status,
		"verified":  verified,
		"missing":   len(missing),
		"settings":  payload.SettingsImported,
		"synced_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, importStatusTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record import status: %w", err)
	}

	log.WithFields(logrus.Fields{
		"status":   status,
		"verified": verified,
		"missing":  len(missing),
	}).Info("Import sync completed")

	return nil
}
