package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func CreatePeriod(screenID int, name string, startHour, endHour int, priceMultiplier float64) (model.Period, error) {
	var p model.Period
	const q = `
	INSERT INTO time_periods (screen_id, name, start_hour, end_hour, price_multiplier, created_at)
	VALUES ($1, $2, $3, $4, $5, now())
	RETURNING id, screen_id, name, start_hour, end_hour, price_multiplier, created_at;`
	if err := DB.Get(&p, q, screenID, name, startHour, endHour, priceMultiplier); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreatePeriod failed")
		return model.Period{}, err
	}
	return p, nil
}

func ListPeriodsForScreen(screenID int) ([]model.Period, error) {
	var out []model.Period
	const q = `
	SELECT id, screen_id, name, start_hour, end_hour, price_multiplier, created_at
	  FROM time_periods
	 WHERE screen_id = $1
	 ORDER BY start_hour, id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListPeriodsForScreen failed")
		return nil, err
	}
	return out, nil
}

func UpdatePeriod(id int, name *string, startHour, endHour *int, priceMultiplier *float64) error {
	_, err := DB.Exec(`
		UPDATE time_periods
		SET
		name             = COALESCE($2, name),
		start_hour       = COALESCE($3, start_hour),
		end_hour         = COALESCE($4, end_hour),
		price_multiplier = COALESCE($5, price_multiplier)
		WHERE id = $1;`,
		id, name, startHour, endHour, priceMultiplier,
	)
	if err != nil {
		log.Error().Err(err).Int("period_id", id).Msg("UpdatePeriod failed")
	}
	return err
}

// DeletePeriod nulls out bookings pinned to the period (FK SET NULL); the
// availability calculator then prorates them as unassigned.
func DeletePeriod(id int) error {
	_, err := DB.Exec(`DELETE FROM time_periods WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("period_id", id).Msg("DeletePeriod failed")
	}
	return err
}
