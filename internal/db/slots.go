package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func CreateSlot(screenID int, contentType string, durationSeconds int, pricePerPlay float64) (model.Slot, error) {
	var s model.Slot
	const q = `
	INSERT INTO slots (screen_id, content_type, duration_seconds, price_per_play, is_active, created_at)
	VALUES ($1, $2, $3, $4, true, now())
	RETURNING id, screen_id, content_type, duration_seconds, price_per_play, is_active, created_at;`
	if err := DB.Get(&s, q, screenID, contentType, durationSeconds, pricePerPlay); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreateSlot failed")
		return model.Slot{}, err
	}
	return s, nil
}

func GetSlotByID(id int) (model.Slot, error) {
	var s model.Slot
	const q = `
	SELECT id, screen_id, content_type, duration_seconds, price_per_play, is_active, created_at
	  FROM slots WHERE id = $1;`
	err := DB.Get(&s, q, id)
	if err != nil {
		log.Error().Err(err).Int("slot_id", id).Msg("GetSlotByID failed")
	}
	return s, err
}

func ListSlotsForScreen(screenID int) ([]model.Slot, error) {
	var out []model.Slot
	const q = `
	SELECT id, screen_id, content_type, duration_seconds, price_per_play, is_active, created_at
	  FROM slots
	 WHERE screen_id = $1
	 ORDER BY id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListSlotsForScreen failed")
		return nil, err
	}
	return out, nil
}

func SetSlotActive(id int, active bool) error {
	_, err := DB.Exec(`UPDATE slots SET is_active = $2 WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("slot_id", id).Msg("SetSlotActive failed")
	}
	return err
}

func DeleteSlot(id int) error {
	_, err := DB.Exec(`DELETE FROM slots WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("slot_id", id).Msg("DeleteSlot failed")
	}
	return err
}
