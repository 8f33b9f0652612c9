package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

const overlayColumns = `
	id, screen_id, source, broadcast_id, type, message, image_url, position,
	background_color, text_color, font_size, scroll_speed,
	priority, is_active, is_paused, paused_by_broadcast_id, paused_at,
	frequency_type, display_duration, passage_limit, passage_reset,
	current_passage_count, last_passage_reset,
	start_time, end_time, created_at, updated_at`

func CreateOverlay(o model.ScreenOverlay) (model.ScreenOverlay, error) {
	var out model.ScreenOverlay
	q := `
	INSERT INTO screen_overlays
	  (screen_id, source, broadcast_id, type, message, image_url, position,
	   background_color, text_color, font_size, scroll_speed,
	   priority, is_active, is_paused, frequency_type, display_duration,
	   passage_limit, passage_reset, current_passage_count, last_passage_reset,
	   start_time, end_time, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,false,$14,$15,$16,$17,0,$18,$19,$20,now(),now())
	RETURNING ` + overlayColumns + `;`
	err := DB.Get(&out, q,
		o.ScreenID, o.Source, o.BroadcastID, o.Type, o.Message, o.ImageURL, o.Position,
		o.BackgroundColor, o.TextColor, o.FontSize, o.ScrollSpeed,
		o.Priority, o.IsActive, o.FrequencyType, o.DisplayDuration,
		o.PassageLimit, o.PassageReset, o.LastPassageReset,
		o.StartTime, o.EndTime,
	)
	if err != nil {
		log.Error().Err(err).Int("screen_id", o.ScreenID).Msg("CreateOverlay failed")
		return model.ScreenOverlay{}, err
	}
	return out, nil
}

func GetOverlayByID(id int) (model.ScreenOverlay, error) {
	var o model.ScreenOverlay
	err := DB.Get(&o, `SELECT `+overlayColumns+` FROM screen_overlays WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("overlay_id", id).Msg("GetOverlayByID failed")
	}
	return o, err
}

func ListOverlaysForScreen(screenID int) ([]model.ScreenOverlay, error) {
	var out []model.ScreenOverlay
	q := `SELECT ` + overlayColumns + ` FROM screen_overlays WHERE screen_id = $1 ORDER BY priority DESC, id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListOverlaysForScreen failed")
		return nil, err
	}
	return out, nil
}

// PauseOverlays records the pausing broadcast on every given overlay so the
// resume path can find its victims.
func PauseOverlays(ids []int, broadcastID int, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := prepareInQuery(`
		UPDATE screen_overlays
		   SET is_paused = true,
		       paused_by_broadcast_id = ?,
		       paused_at = ?,
		       updated_at = now()
		 WHERE id IN (?);`, broadcastID, at, ids)
	if err != nil {
		return err
	}
	if _, err := DB.Exec(q, args...); err != nil {
		log.Error().Err(err).Int("broadcast_id", broadcastID).Msg("PauseOverlays failed")
		return err
	}
	return nil
}

// ResumeOverlaysPausedBy clears pause state on every overlay the broadcast
// had paused.
func ResumeOverlaysPausedBy(broadcastID int) error {
	_, err := DB.Exec(`
		UPDATE screen_overlays
		   SET is_paused = false,
		       paused_by_broadcast_id = NULL,
		       paused_at = NULL,
		       updated_at = now()
		 WHERE paused_by_broadcast_id = $1;`, broadcastID)
	if err != nil {
		log.Error().Err(err).Int("broadcast_id", broadcastID).Msg("ResumeOverlaysPausedBy failed")
	}
	return err
}

func DeactivateOverlay(id int) error {
	_, err := DB.Exec(`UPDATE screen_overlays SET is_active = false, updated_at = now() WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("overlay_id", id).Msg("DeactivateOverlay failed")
	}
	return err
}

func DeactivateOverlaysForBroadcast(broadcastID int) error {
	_, err := DB.Exec(`UPDATE screen_overlays SET is_active = false, updated_at = now() WHERE broadcast_id = $1;`, broadcastID)
	if err != nil {
		log.Error().Err(err).Int("broadcast_id", broadcastID).Msg("DeactivateOverlaysForBroadcast failed")
	}
	return err
}

func IncrementPassageCount(id int) error {
	_, err := DB.Exec(`
		UPDATE screen_overlays
		   SET current_passage_count = current_passage_count + 1,
		       updated_at = now()
		 WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("overlay_id", id).Msg("IncrementPassageCount failed")
	}
	return err
}

func ResetPassageCount(id int, at time.Time) error {
	_, err := DB.Exec(`
		UPDATE screen_overlays
		   SET current_passage_count = 0,
		       last_passage_reset = $2,
		       updated_at = now()
		 WHERE id = $1;`, id, at)
	if err != nil {
		log.Error().Err(err).Int("overlay_id", id).Msg("ResetPassageCount failed")
	}
	return err
}

func DeleteOverlay(id int) error {
	_, err := DB.Exec(`DELETE FROM screen_overlays WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("overlay_id", id).Msg("DeleteOverlay failed")
	}
	return err
}
