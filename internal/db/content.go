package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// @ INTERNAL CONTENT

func CreateInternalContent(
	screenID int,
	name, url, contentType string,
	durationSeconds, priority int,
	startDate, endDate *time.Time,
) (model.InternalContent, error) {
	var c model.InternalContent
	const q = `
	INSERT INTO internal_content
	  (screen_id, name, url, type, duration_seconds, priority, is_active, start_date, end_date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8, now())
	RETURNING id, screen_id, name, url, type, duration_seconds, priority, is_active, start_date, end_date, created_at;`
	if err := DB.Get(&c, q, screenID, name, url, contentType, durationSeconds, priority, startDate, endDate); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreateInternalContent failed")
		return model.InternalContent{}, err
	}
	return c, nil
}

func ListInternalContentForScreen(screenID int) ([]model.InternalContent, error) {
	var out []model.InternalContent
	const q = `
	SELECT id, screen_id, name, url, type, duration_seconds, priority, is_active, start_date, end_date, created_at
	  FROM internal_content
	 WHERE screen_id = $1
	 ORDER BY id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListInternalContentForScreen failed")
		return nil, err
	}
	return out, nil
}

func SetInternalContentActive(id int, active bool) error {
	_, err := DB.Exec(`UPDATE internal_content SET is_active = $2 WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("SetInternalContentActive failed")
	}
	return err
}

func DeleteInternalContent(id int) error {
	_, err := DB.Exec(`DELETE FROM internal_content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("DeleteInternalContent failed")
	}
	return err
}

// @ FILLER

func CreateFiller(screenID int, name, url, contentType string, durationSeconds int) (model.Filler, error) {
	var f model.Filler
	const q = `
	INSERT INTO fillers (screen_id, name, url, type, duration_seconds, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, true, now())
	RETURNING id, screen_id, name, url, type, duration_seconds, is_active, created_at;`
	if err := DB.Get(&f, q, screenID, name, url, contentType, durationSeconds); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreateFiller failed")
		return model.Filler{}, err
	}
	return f, nil
}

func ListFillersForScreen(screenID int) ([]model.Filler, error) {
	var out []model.Filler
	const q = `
	SELECT id, screen_id, name, url, type, duration_seconds, is_active, created_at
	  FROM fillers
	 WHERE screen_id = $1
	 ORDER BY id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListFillersForScreen failed")
		return nil, err
	}
	return out, nil
}

func SetFillerActive(id int, active bool) error {
	_, err := DB.Exec(`UPDATE fillers SET is_active = $2 WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("filler_id", id).Msg("SetFillerActive failed")
	}
	return err
}

func DeleteFiller(id int) error {
	_, err := DB.Exec(`DELETE FROM fillers WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("filler_id", id).Msg("DeleteFiller failed")
	}
	return err
}

// @ AD SALES

func CreateAdSalesContent(
	screenID int,
	name, url, contentType string,
	durationSeconds int,
	startDate, endDate *time.Time,
) (model.AdSalesContent, error) {
	var a model.AdSalesContent
	const q = `
	INSERT INTO ad_sales_content
	  (screen_id, name, url, type, duration_seconds, is_active, start_date, end_date, created_at)
	VALUES ($1, $2, $3, $4, $5, true, $6, $7, now())
	RETURNING id, screen_id, name, url, type, duration_seconds, is_active, start_date, end_date, created_at;`
	if err := DB.Get(&a, q, screenID, name, url, contentType, durationSeconds, startDate, endDate); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreateAdSalesContent failed")
		return model.AdSalesContent{}, err
	}
	return a, nil
}

func ListAdSalesContentForScreen(screenID int) ([]model.AdSalesContent, error) {
	var out []model.AdSalesContent
	const q = `
	SELECT id, screen_id, name, url, type, duration_seconds, is_active, start_date, end_date, created_at
	  FROM ad_sales_content
	 WHERE screen_id = $1
	 ORDER BY id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListAdSalesContentForScreen failed")
		return nil, err
	}
	return out, nil
}

func DeleteAdSalesContent(id int) error {
	_, err := DB.Exec(`DELETE FROM ad_sales_content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("DeleteAdSalesContent failed")
	}
	return err
}
