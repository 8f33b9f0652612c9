package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

const broadcastColumns = `
	id, name, type, content_url, content_type, duration_seconds,
	message, image_url, overlay_kind, overlay_position,
	target_screen_id, target_organization_id, target_city, target_country, org_filter,
	schedule_mode, is_active, start_datetime, end_datetime, scheduled_datetime,
	recurrence_type, recurrence_interval, recurrence_days, recurrence_end_date, recurrence_time,
	schedule_priority, content_priority, override_playlist,
	created_at, updated_at`

func CreateBroadcast(b model.Broadcast) (model.Broadcast, error) {
	var out model.Broadcast
	q := `
	INSERT INTO broadcasts
	  (name, type, content_url, content_type, duration_seconds,
	   message, image_url, overlay_kind, overlay_position,
	   target_screen_id, target_organization_id, target_city, target_country, org_filter,
	   schedule_mode, is_active, start_datetime, end_datetime, scheduled_datetime,
	   recurrence_type, recurrence_interval, recurrence_days, recurrence_end_date, recurrence_time,
	   schedule_priority, content_priority, override_playlist, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,now(),now())
	RETURNING ` + broadcastColumns + `;`
	err := DB.Get(&out, q,
		b.Name, b.Type, b.ContentURL, b.ContentType, b.DurationSeconds,
		b.Message, b.ImageURL, b.OverlayKind, b.OverlayPosition,
		b.TargetScreenID, b.TargetOrganizationID, b.TargetCity, b.TargetCountry, b.OrgFilter,
		b.ScheduleMode, b.IsActive, b.StartDatetime, b.EndDatetime, b.ScheduledDatetime,
		b.RecurrenceType, b.RecurrenceInterval, b.RecurrenceDays, b.RecurrenceEndDate, b.RecurrenceTime,
		b.SchedulePriority, b.ContentPriority, b.OverridePlaylist,
	)
	if err != nil {
		log.Error().Err(err).Msg("CreateBroadcast failed")
		return model.Broadcast{}, err
	}
	return out, nil
}

func GetBroadcastByID(id int) (model.Broadcast, error) {
	var b model.Broadcast
	err := DB.Get(&b, `SELECT `+broadcastColumns+` FROM broadcasts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("broadcast_id", id).Msg("GetBroadcastByID failed")
	}
	return b, err
}

func ListBroadcasts() ([]model.Broadcast, error) {
	var out []model.Broadcast
	if err := DB.Select(&out, `SELECT `+broadcastColumns+` FROM broadcasts ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListBroadcasts failed")
		return nil, err
	}
	return out, nil
}

// ListActiveBroadcasts returns candidates for per-screen evaluation; the
// recurrence engine applies targeting and trigger rules.
func ListActiveBroadcasts() ([]model.Broadcast, error) {
	var out []model.Broadcast
	q := `SELECT ` + broadcastColumns + ` FROM broadcasts WHERE is_active = true ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListActiveBroadcasts failed")
		return nil, err
	}
	return out, nil
}

func SetBroadcastActive(id int, active bool) error {
	_, err := DB.Exec(`UPDATE broadcasts SET is_active = $2, updated_at = now() WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("broadcast_id", id).Msg("SetBroadcastActive failed")
	}
	return err
}

func DeleteBroadcast(id int) error {
	_, err := DB.Exec(`DELETE FROM broadcasts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("broadcast_id", id).Msg("DeleteBroadcast failed")
	}
	return err
}
