package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

const screenColumns = `
	id, organization_id, device_id, name, location,
	resolution_width, resolution_height, supported_content_types,
	security_buffer_minutes, mode, stream_url,
	is_active, paired, created_at, updated_at`

func CreateScreen(
	organizationID int,
	name string,
	location *string,
	resolutionWidth, resolutionHeight *int,
	securityBufferMinutes int,
	mode string,
	supportedContentTypes []string,
) (model.Screen, error) {
	var s model.Screen
	q := `
	INSERT INTO screens
	  (organization_id, name, location, resolution_width, resolution_height,
	   security_buffer_minutes, mode, supported_content_types,
	   is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, now(), now())
	RETURNING ` + screenColumns + `;`
	if err := DB.Get(&s, q, organizationID, name, location,
		resolutionWidth, resolutionHeight, securityBufferMinutes,
		mode, pq.StringArray(supportedContentTypes)); err != nil {
		log.Error().Err(err).Msg("CreateScreen failed")
		return model.Screen{}, err
	}
	return s, nil
}

func GetScreenByID(id int) (model.Screen, error) {
	var s model.Screen
	err := DB.Get(&s, `SELECT `+screenColumns+` FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("GetScreenByID failed")
	}
	return s, err
}

func GetScreenByDeviceID(deviceID *string) (model.Screen, error) {
	var s model.Screen
	err := DB.Get(&s, `SELECT `+screenColumns+` FROM screens WHERE device_id = $1;`, deviceID)
	if err != nil {
		log.Error().Err(err).Msg("GetScreenByDeviceID failed")
	}
	return s, err
}

func ListScreens() ([]model.Screen, error) {
	var out []model.Screen
	if err := DB.Select(&out, `SELECT `+screenColumns+` FROM screens ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScreens failed")
		return nil, err
	}
	return out, nil
}

func ListScreensByOrganization(organizationID int) ([]model.Screen, error) {
	var out []model.Screen
	q := `SELECT ` + screenColumns + ` FROM screens WHERE organization_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, organizationID); err != nil {
		log.Error().Err(err).Int("organization_id", organizationID).Msg("ListScreensByOrganization failed")
		return nil, err
	}
	return out, nil
}

func UpdateScreen(
	id int,
	name, location *string,
	resolutionWidth, resolutionHeight *int,
	securityBufferMinutes *int,
	mode, streamURL *string,
	isActive *bool,
) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET
		name                    = COALESCE($2, name),
		location                = COALESCE($3, location),
		resolution_width        = COALESCE($4, resolution_width),
		resolution_height       = COALESCE($5, resolution_height),
		security_buffer_minutes = COALESCE($6, security_buffer_minutes),
		mode                    = COALESCE($7, mode),
		stream_url              = COALESCE($8, stream_url),
		is_active               = COALESCE($9, is_active),
		updated_at              = now()
		WHERE id = $1;`,
		id, name, location, resolutionWidth, resolutionHeight,
		securityBufferMinutes, mode, streamURL, isActive,
	)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("UpdateScreen failed")
	}
	return err
}

// DeleteScreen removes the screen; periods, slots, bookings, overlays and
// content rows follow via ON DELETE CASCADE.
func DeleteScreen(id int) error {
	_, err := DB.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("DeleteScreen failed")
	}
	return err
}

func IsScreenPairedByDeviceID(deviceID *string) (bool, error) {
	var paired bool
	err := DB.Get(&paired, `SELECT paired FROM screens WHERE device_id = $1;`, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Error().Err(err).Msg("IsScreenPairedByDeviceID failed")
		return false, err
	}
	return paired, nil
}

func AssignDeviceIDToScreen(screenID int, deviceID *string) error {
	_, err := DB.Exec(`UPDATE screens SET device_id = $2, updated_at = now() WHERE id = $1;`, screenID, deviceID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("AssignDeviceIDToScreen failed")
	}
	return err
}

func PairScreen(screenID int) error {
	_, err := DB.Exec(`UPDATE screens SET paired = true, updated_at = now() WHERE id = $1;`, screenID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("PairScreen failed")
	}
	return err
}
