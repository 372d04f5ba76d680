package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"wallet-import/internal/models"

	"github.com/jmoiron/sqlx"
)

const desktopSettingsKey = "desktop"

type SettingsRepository struct {
	db sqlx.ExtContext
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// ImportSettings stores the imported settings, replacing earlier ones.
func (r *SettingsRepository) ImportSettings(ctx context.Context, settings models.DesktopSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	query := `INSERT INTO app_settings (setting_key, value) VALUES (?, ?)
	          ON DUPLICATE KEY UPDATE value = VALUES(value)`
	_, err = r.db.ExecContext(ctx, query, desktopSettingsKey, payload)
	return err
}

// Get returns the stored settings, or nil when none were imported yet.
func (r *SettingsRepository) Get(ctx context.Context) (*models.DesktopSettings, error) {
	var payload []byte
	query := "SELECT value FROM app_settings WHERE setting_key = ? LIMIT 1"
	err := sqlx.GetContext(ctx, r.db, &payload, query, desktopSettingsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings models.DesktopSettings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}
