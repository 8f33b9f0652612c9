package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// GetSetting returns the value for key, or "" with no error when the key is
// absent so the settings cache can fall back to its default.
func GetSetting(key string) (string, error) {
	var value string
	err := DB.Get(&value, `SELECT value FROM settings WHERE key = $1;`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		log.Error().Err(err).Str("key", key).Msg("GetSetting failed")
		return "", err
	}
	return value, nil
}

func SetSetting(key, value string) error {
	_, err := DB.Exec(`
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();`,
		key, value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("SetSetting failed")
	}
	return err
}
