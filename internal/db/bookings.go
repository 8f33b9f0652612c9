package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// bookingColumns joins the slot so engine callers get the play duration
// without a second query.
const bookingColumns = `
	b.id, b.screen_id, b.slot_id, b.time_period_id,
	b.content_name, b.content_url, b.content_type, b.content_status,
	s.duration_seconds AS duration_seconds,
	b.num_plays, b.plays_completed, b.start_date, b.end_date,
	b.status, b.created_at, b.updated_at`

func CreateBooking(
	screenID, slotID int,
	timePeriodID *int,
	contentName, contentURL, contentType string,
	numPlays int,
	startDate, endDate *time.Time,
) (model.Booking, error) {
	var id int
	const q = `
	INSERT INTO bookings
	  (screen_id, slot_id, time_period_id, content_name, content_url, content_type,
	   content_status, num_plays, plays_completed, start_date, end_date, status,
	   created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, 0, $8, $9, 'pending', now(), now())
	RETURNING id;`
	if err := DB.Get(&id, q, screenID, slotID, timePeriodID,
		contentName, contentURL, contentType, numPlays, startDate, endDate); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("CreateBooking failed")
		return model.Booking{}, err
	}
	return GetBookingByID(id)
}

func GetBookingByID(id int) (model.Booking, error) {
	var b model.Booking
	q := `SELECT ` + bookingColumns + ` FROM bookings b JOIN slots s ON s.id = b.slot_id WHERE b.id = $1;`
	err := DB.Get(&b, q, id)
	if err != nil {
		log.Error().Err(err).Int("booking_id", id).Msg("GetBookingByID failed")
	}
	return b, err
}

func ListBookingsForScreen(screenID int) ([]model.Booking, error) {
	var out []model.Booking
	q := `
	SELECT ` + bookingColumns + `
	  FROM bookings b
	  JOIN slots s ON s.id = b.slot_id
	 WHERE b.screen_id = $1
	 ORDER BY b.id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListBookingsForScreen failed")
		return nil, err
	}
	return out, nil
}

// ListBookingsOverlappingRange feeds the availability calculator: every
// non-rejected booking whose date range touches [start, end]. Open-ended
// bookings always qualify.
func ListBookingsOverlappingRange(screenID int, start, end time.Time) ([]model.Booking, error) {
	var out []model.Booking
	q := `
	SELECT ` + bookingColumns + `
	  FROM bookings b
	  JOIN slots s ON s.id = b.slot_id
	 WHERE b.screen_id = $1
	   AND b.status <> 'rejected'
	   AND (b.start_date IS NULL OR b.start_date <= $3)
	   AND (b.end_date   IS NULL OR b.end_date   >= $2)
	 ORDER BY b.id;`
	if err := DB.Select(&out, q, screenID, start, end); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListBookingsOverlappingRange failed")
		return nil, err
	}
	return out, nil
}

// ListActiveBookingsForScreen returns active bookings with plays remaining,
// already scoped to what the playlist builder can use.
func ListActiveBookingsForScreen(screenID int) ([]model.Booking, error) {
	var out []model.Booking
	q := `
	SELECT ` + bookingColumns + `
	  FROM bookings b
	  JOIN slots s ON s.id = b.slot_id
	 WHERE b.screen_id = $1
	   AND b.status = 'active'
	   AND b.plays_completed < b.num_plays
	 ORDER BY b.id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListActiveBookingsForScreen failed")
		return nil, err
	}
	return out, nil
}

func UpdateBookingStatus(id int, status string) error {
	_, err := DB.Exec(`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1;`, id, status)
	if err != nil {
		log.Error().Err(err).Int("booking_id", id).Str("status", status).Msg("UpdateBookingStatus failed")
	}
	return err
}

func UpdateBookingContentStatus(id int, contentStatus string) error {
	_, err := DB.Exec(`UPDATE bookings SET content_status = $2, updated_at = now() WHERE id = $1;`, id, contentStatus)
	if err != nil {
		log.Error().Err(err).Int("booking_id", id).Str("content_status", contentStatus).Msg("UpdateBookingContentStatus failed")
	}
	return err
}

// RecordPlayback atomically increments plays_completed and flips the
// booking to completed when the purchase is exhausted. Concurrent pollers
// for the same screen rely on the row-level atomicity of this statement.
func RecordPlayback(id int) (model.Booking, error) {
	var b model.Booking
	const q = `
	UPDATE bookings b
	   SET plays_completed = b.plays_completed + 1,
	       status = CASE WHEN b.plays_completed + 1 >= b.num_plays THEN 'completed' ELSE b.status END,
	       updated_at = now()
	  FROM slots s
	 WHERE b.id = $1 AND s.id = b.slot_id
	RETURNING b.id, b.screen_id, b.slot_id, b.time_period_id,
	          b.content_name, b.content_url, b.content_type, b.content_status,
	          s.duration_seconds AS duration_seconds,
	          b.num_plays, b.plays_completed, b.start_date, b.end_date,
	          b.status, b.created_at, b.updated_at;`
	if err := DB.Get(&b, q, id); err != nil {
		log.Error().Err(err).Int("booking_id", id).Msg("RecordPlayback failed")
		return model.Booking{}, err
	}
	return b, nil
}
