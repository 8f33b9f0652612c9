package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

type bookingController struct{}

// BookingModule mounts authenticated booking endpoints.
func BookingModule() api.Module {
	ctl := &bookingController{}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens/:id/bookings", 	ctl.listBookings)
		c.POST("/screens/:id/bookings", ctl.createBooking)
		c.GET("/bookings/:id", 			ctl.getBooking)

		c.POST("/bookings/:id/approve", ctl.approveBooking)
		c.POST("/bookings/:id/reject", 	ctl.rejectBooking)

		c.POST("/bookings/:id/content/approve", ctl.approveContent)
		c.POST("/bookings/:id/content/reject", 	ctl.rejectContent)
	})
}

// GET /api/admin/screens/:id/bookings
func (b *bookingController) listBookings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	bookings, err := db.ListBookingsForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list bookings"}
	}
	return bookings, nil
}

// POST /api/admin/screens/:id/bookings
// Creates a pending booking after checking the requested plays actually fit
// the screen's free capacity over the date range.
func (b *bookingController) createBooking(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screenID, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := db.GetScreenByID(screenID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	slot, err := db.GetSlotByID(request.SlotID)
	if err != nil || slot.ScreenID != screenID {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "slot not found on this screen"}
	}
	if !slot.IsActive {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "slot is not active"}
	}
	if request.ContentType != slot.ContentType {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "content type does not match slot"}
	}
	if !screen.SupportsContentType(request.ContentType) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "screen does not support this content type"}
	}

	startDate, err := parseDate(request.StartDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_date"}
	}
	endDate, err := parseDate(request.EndDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_date"}
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_date before start_date"}
	}

	now := schedule.Now()
	rangeStart, rangeEnd := now, now
	if startDate != nil {
		rangeStart = *startDate
	}
	if endDate != nil {
		rangeEnd = *endDate
	} else {
		rangeEnd = rangeStart
	}

	periods, err := db.ListPeriodsForScreen(screenID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load periods"}
	}
	slots, err := db.ListSlotsForScreen(screenID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load slots"}
	}
	existing, err := db.ListBookingsOverlappingRange(screenID, rangeStart, rangeEnd)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load bookings"}
	}

	availability := schedule.ComputeAvailability(schedule.AvailabilityQuery{
		Screen:   screen,
		Periods:  periods,
		Slots:    slots,
		Bookings: existing,
		Start:    rangeStart,
		End:      rangeEnd,
		PeriodID: request.TimePeriodID,
		SlotID:   &request.SlotID,
		Now:      now,
	})
	// Overcommission is allowed: the quote reports remaining availability
	// (clamped to zero) but never blocks the sale.
	multiplier := 1.0
	if request.TimePeriodID != nil {
		for _, p := range periods {
			if p.ID == *request.TimePeriodID {
				multiplier = p.PriceMultiplier
			}
		}
	}

	booking, err := db.CreateBooking(screenID, request.SlotID, request.TimePeriodID,
		request.ContentName, request.ContentURL, request.ContentType,
		request.NumPlays, startDate, endDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create booking"}
	}

	log.Info().Int("booking_id", booking.ID).Int("screen_id", screenID).
		Int("num_plays", request.NumPlays).Msg("booking created")

	return packets.BookingQuoteResponse{
		Booking:      booking,
		TotalPrice:   float64(request.NumPlays) * slot.PricePerPlay * multiplier,
		Allocation:   schedule.DistributePlaysOverRange(request.NumPlays, rangeStart, rangeEnd),
		Availability: availability,
	}, nil
}

// GET /api/admin/bookings/:id
func (b *bookingController) getBooking(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid booking id"}
	}
	booking, err := db.GetBookingByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "booking not found"}
	}
	return booking, nil
}

func (b *bookingController) setStatus(ctx *gin.Context, status string) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid booking id"}
	}
	booking, err := db.GetBookingByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "booking not found"}
	}
	if booking.Status != model.BookingStatusPending {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "booking already decided"}
	}
	if err := db.UpdateBookingStatus(id, status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update booking"}
	}

	if status == model.BookingStatusActive {
		if screen, err := db.GetScreenByID(booking.ScreenID); err == nil {
			middleware.RefreshScreen(screen.DeviceID)
		}
	}
	return gin.H{"id": id, "status": status}, nil
}

// POST /api/admin/bookings/:id/approve
func (b *bookingController) approveBooking(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setStatus(ctx, model.BookingStatusActive)
}

// POST /api/admin/bookings/:id/reject
func (b *bookingController) rejectBooking(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setStatus(ctx, model.BookingStatusRejected)
}

func (b *bookingController) setContentStatus(ctx *gin.Context, status string) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid booking id"}
	}
	booking, err := db.GetBookingByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "booking not found"}
	}
	if err := db.UpdateBookingContentStatus(id, status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content status"}
	}

	if status == model.ContentStatusApproved {
		if screen, err := db.GetScreenByID(booking.ScreenID); err == nil {
			middleware.RefreshScreen(screen.DeviceID)
		}
	}
	return gin.H{"id": id, "content_status": status}, nil
}

// POST /api/admin/bookings/:id/content/approve
func (b *bookingController) approveContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setContentStatus(ctx, model.ContentStatusApproved)
}

// POST /api/admin/bookings/:id/content/reject
func (b *bookingController) rejectContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setContentStatus(ctx, model.ContentStatusRejected)
}
