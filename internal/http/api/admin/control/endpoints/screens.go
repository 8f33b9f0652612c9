package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/redis"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

type screenController struct{}

// ScreenModule mounts all authenticated /screens endpoints.
func ScreenModule() api.Module {
	ctl := &screenController{}
	return api.ModuleFunc(func(c *api.Controller) {
		// CRUD
		c.GET("/screens", 			ctl.listScreens)
		c.POST("/screens", 			ctl.createScreen)
		c.GET("/screens/:id", 		ctl.getScreen)
		c.PUT("/screens/:id", 		ctl.updateScreen)
		c.DELETE("/screens/:id", 	ctl.deleteScreen)

		// pairing
		c.POST("/screens/pair", 	ctl.pairScreen)

		// time periods
		c.GET("/screens/:id/periods", 		ctl.listPeriods)
		c.POST("/screens/:id/periods", 		ctl.createPeriod)
		c.PUT("/periods/:id", 				ctl.updatePeriod)
		c.DELETE("/periods/:id", 			ctl.deletePeriod)

		// slots
		c.GET("/screens/:id/slots", 	ctl.listSlots)
		c.POST("/screens/:id/slots", 	ctl.createSlot)
		c.DELETE("/slots/:id", 			ctl.deleteSlot)

		// overlays currently planned for the screen
		c.GET("/screens/:id/overlays", ctl.listOverlays)

		// capacity
		c.GET("/screens/:id/availability", ctl.getAvailability)
	})
}

func screenResponse(s model.Screen) packets.ScreenResponse {
	return packets.ScreenResponse{
		ID:                    s.ID,
		OrganizationID:        s.OrganizationID,
		DeviceID:              s.DeviceID,
		Name:                  s.Name,
		Location:              s.Location,
		ResolutionWidth:       s.ResolutionWidth,
		ResolutionHeight:      s.ResolutionHeight,
		SupportedContentTypes: s.SupportedContentTypes,
		SecurityBufferMinutes: s.SecurityBufferMinutes,
		Mode:                  s.Mode,
		StreamURL:             s.StreamURL,
		IsActive:              s.IsActive,
		Paired:                s.Paired,
		CreatedAt:             s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             s.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/screens
func (t *screenController) listScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := db.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screens"}
	}

	out := make([]packets.ScreenResponse, 0, len(all))
	for _, s := range all {
		out = append(out, screenResponse(s))
	}
	return out, nil
}

// POST /api/admin/screens
func (t *screenController) createScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	mode := request.Mode
	if mode == "" {
		mode = model.ScreenModeStandard
	}
	if mode != model.ScreenModeStandard && mode != model.ScreenModeIPTV {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown screen mode"}
	}

	screen, err := db.CreateScreen(request.OrganizationID, request.Name, request.Location,
		request.ResolutionWidth, request.ResolutionHeight,
		request.SecurityBufferMinutes, mode, request.SupportedContentTypes)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return screenResponse(screen), nil
}

// GET /api/admin/screens/:id
func (t *screenController) getScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	screen, err := db.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return screenResponse(screen), nil
}

// PUT /api/admin/screens/:id
func (t *screenController) updateScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := db.UpdateScreen(id, request.Name, request.Location,
		request.ResolutionWidth, request.ResolutionHeight,
		request.SecurityBufferMinutes, request.Mode, request.StreamURL, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}

	screen, err := db.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	middleware.RefreshScreen(screen.DeviceID)
	return screenResponse(screen), nil
}

// DELETE /api/admin/screens/:id
func (t *screenController) deleteScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	if err := db.DeleteScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"deleted": id}, nil
}

// POST /api/admin/screens/pair
// Completes pairing: the code a device registered maps back to its device ID
// in redis, which is then bound to the chosen screen row.
func (t *screenController) pairScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PairScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	deviceID, err := redis.Get(ctx, request.PairingCode)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown pairing code"}
	}

	if err := db.AssignDeviceIDToScreen(request.ScreenID, &deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign device"}
	}
	if err := db.PairScreen(request.ScreenID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not mark screen paired"}
	}
	redis.Del(ctx, request.PairingCode)

	log.Info().Int("screen_id", request.ScreenID).Str("device_id", deviceID).Msg("screen paired")
	return gin.H{"screen_id": request.ScreenID, "device_id": deviceID}, nil
}

// @ TIME PERIODS

// GET /api/admin/screens/:id/periods
func (t *screenController) listPeriods(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	periods, err := db.ListPeriodsForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list periods"}
	}
	return periods, nil
}

// POST /api/admin/screens/:id/periods
func (t *screenController) createPeriod(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreatePeriodRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.PriceMultiplier <= 0 {
		request.PriceMultiplier = 1.0
	}

	period, err := db.CreatePeriod(id, request.Name, request.StartHour, request.EndHour, request.PriceMultiplier)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create period"}
	}
	return period, nil
}

// PUT /api/admin/periods/:id
func (t *screenController) updatePeriod(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid period id"}
	}
	var request packets.UpdatePeriodRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := db.UpdatePeriod(id, request.Name, request.StartHour, request.EndHour, request.PriceMultiplier); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update period"}
	}
	return gin.H{"updated": id}, nil
}

// DELETE /api/admin/periods/:id
func (t *screenController) deletePeriod(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid period id"}
	}
	if err := db.DeletePeriod(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete period"}
	}
	return gin.H{"deleted": id}, nil
}

// @ SLOTS

// GET /api/admin/screens/:id/slots
func (t *screenController) listSlots(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	slots, err := db.ListSlotsForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list slots"}
	}
	return slots, nil
}

// POST /api/admin/screens/:id/slots
func (t *screenController) createSlot(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := db.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if !screen.SupportsContentType(request.ContentType) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "screen does not support this content type"}
	}

	slot, err := db.CreateSlot(id, request.ContentType, request.DurationSeconds, request.PricePerPlay)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create slot"}
	}
	return slot, nil
}

// DELETE /api/admin/slots/:id
func (t *screenController) deleteSlot(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid slot id"}
	}
	if err := db.DeleteSlot(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete slot"}
	}
	return gin.H{"deleted": id}, nil
}

// @ OVERLAYS

// GET /api/admin/screens/:id/overlays
func (t *screenController) listOverlays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	overlays, err := db.ListOverlaysForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list overlays"}
	}
	return overlays, nil
}

// @ AVAILABILITY

// GET /api/admin/screens/:id/availability?start=&end=&period_id=&slot_id=&content_type=
// Defaults to today when no range is given. Unknown filter values yield a
// zero-availability result rather than an error.
func (t *screenController) getAvailability(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}

	now := schedule.Now()
	start, end := now, now
	if s := ctx.Query("start"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start date"}
		}
		start = parsed
	}
	if s := ctx.Query("end"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end date"}
		}
		end = parsed
	}
	if end.Before(start) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end before start"}
	}

	query := schedule.AvailabilityQuery{Start: start, End: end, Now: now}
	if s := ctx.Query("period_id"); s != "" {
		periodID, err := strconv.Atoi(s)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid period_id"}
		}
		query.PeriodID = &periodID
	}
	if s := ctx.Query("slot_id"); s != "" {
		slotID, err := strconv.Atoi(s)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid slot_id"}
		}
		query.SlotID = &slotID
	}
	if s := ctx.Query("content_type"); s != "" {
		query.ContentType = &s
	}

	screen, err := db.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	query.Screen = screen

	if query.Periods, err = db.ListPeriodsForScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load periods"}
	}
	if query.Slots, err = db.ListSlotsForScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load slots"}
	}
	if query.Bookings, err = db.ListBookingsOverlappingRange(id, start, end); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load bookings"}
	}

	return schedule.ComputeAvailability(query), nil
}
