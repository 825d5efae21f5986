package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/asheem/orbital/internal/control"
)

// tuningKey is the settings row holding the motion tuning as JSON.
const tuningKey = "control_tuning"

// SettingsRepository provides access to the key-value settings table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a setting value, replacing any existing one.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// LoadTuning returns the persisted motion tuning, or the defaults if none
// has been saved yet. Stored values are sanitized on the way out so a bad
// row cannot wedge the control loop.
func (r *SettingsRepository) LoadTuning() (control.Tuning, error) {
	raw, err := r.Get(tuningKey)
	if errors.Is(err, ErrNotFound) {
		return control.DefaultTuning(), nil
	}
	if err != nil {
		return control.Tuning{}, err
	}

	var t control.Tuning
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return control.Tuning{}, err
	}
	return t.Sanitize(), nil
}

// SeedTuning persists the given tuning only when none has been saved yet.
// It lets the config file provide initial values without overwriting
// adjustments made through the settings API.
func (r *SettingsRepository) SeedTuning(t control.Tuning) error {
	_, err := r.Get(tuningKey)
	if errors.Is(err, ErrNotFound) {
		return r.SaveTuning(t)
	}
	return err
}

// SaveTuning persists the motion tuning.
func (r *SettingsRepository) SaveTuning(t control.Tuning) error {
	data, err := json.Marshal(t.Sanitize())
	if err != nil {
		return err
	}
	return r.Set(tuningKey, string(data))
}
