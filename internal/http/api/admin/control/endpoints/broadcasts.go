package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/dispatch"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

type broadcastController struct{}

// BroadcastModule mounts authenticated /broadcasts endpoints.
func BroadcastModule() api.Module {
	ctl := &broadcastController{}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/broadcasts", 				ctl.listBroadcasts)
		c.POST("/broadcasts", 				ctl.createBroadcast)
		c.GET("/broadcasts/:id", 			ctl.getBroadcast)
		c.POST("/broadcasts/:id/cancel", 	ctl.cancelBroadcast)
		c.DELETE("/broadcasts/:id", 		ctl.deleteBroadcast)
	})
}

// GET /api/admin/broadcasts
func (b *broadcastController) listBroadcasts(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := db.ListBroadcasts()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list broadcasts"}
	}
	return all, nil
}

// POST /api/admin/broadcasts
// Immediate broadcasts fire on creation; scheduled ones are picked up by the
// dispatcher when their trigger instant arrives.
func (b *broadcastController) createBroadcast(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateBroadcastRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Type == model.BroadcastTypeContent && request.ContentURL == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "content broadcast requires content_url"}
	}
	if request.Type == model.BroadcastTypeOverlay && request.Message == nil && request.ImageURL == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "overlay broadcast requires message or image_url"}
	}

	startDT, err := parseDatetime(request.StartDatetime)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_datetime"}
	}
	endDT, err := parseDatetime(request.EndDatetime)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_datetime"}
	}
	scheduledDT, err := parseDatetime(request.ScheduledDatetime)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid scheduled_datetime"}
	}
	recurrenceEnd, err := parseDate(request.RecurrenceEndDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid recurrence_end_date"}
	}

	if request.ScheduleMode == model.ScheduleModeScheduled && scheduledDT == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "scheduled broadcast requires scheduled_datetime"}
	}

	orgFilter := request.OrgFilter
	if orgFilter == "" {
		orgFilter = model.OrgFilterAll
	}
	recurrenceType := request.RecurrenceType
	if recurrenceType == "" {
		recurrenceType = model.RecurrenceNone
	}
	recurrenceInterval := request.RecurrenceInterval
	if recurrenceInterval <= 0 {
		recurrenceInterval = 1
	}

	broadcast, err := db.CreateBroadcast(model.Broadcast{
		Name:            request.Name,
		Type:            request.Type,
		ContentURL:      request.ContentURL,
		ContentType:     request.ContentType,
		DurationSeconds: request.DurationSeconds,

		Message:         request.Message,
		ImageURL:        request.ImageURL,
		OverlayKind:     request.OverlayKind,
		OverlayPosition: request.OverlayPosition,

		TargetScreenID:       request.TargetScreenID,
		TargetOrganizationID: request.TargetOrganizationID,
		TargetCity:           request.TargetCity,
		TargetCountry:        request.TargetCountry,
		OrgFilter:            orgFilter,

		ScheduleMode:       request.ScheduleMode,
		IsActive:           true,
		StartDatetime:      startDT,
		EndDatetime:        endDT,
		ScheduledDatetime:  scheduledDT,
		RecurrenceType:     recurrenceType,
		RecurrenceInterval: recurrenceInterval,
		RecurrenceDays:     pq.Int64Array(request.RecurrenceDays),
		RecurrenceEndDate:  recurrenceEnd,
		RecurrenceTime:     request.RecurrenceTime,

		SchedulePriority: request.SchedulePriority,
		ContentPriority:  request.ContentPriority,
		OverridePlaylist: request.OverridePlaylist,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create broadcast"}
	}

	if broadcast.ScheduleMode == model.ScheduleModeImmediate {
		if err := dispatch.FireBroadcast(broadcast, schedule.Now()); err != nil {
			log.Error().Err(err).Int("broadcast_id", broadcast.ID).Msg("immediate broadcast dispatch failed")
		}
	}

	return broadcast, nil
}

// GET /api/admin/broadcasts/:id
func (b *broadcastController) getBroadcast(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid broadcast id"}
	}
	broadcast, err := db.GetBroadcastByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "broadcast not found"}
	}
	return broadcast, nil
}

// POST /api/admin/broadcasts/:id/cancel
func (b *broadcastController) cancelBroadcast(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid broadcast id"}
	}
	broadcast, err := db.GetBroadcastByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "broadcast not found"}
	}
	if err := dispatch.CancelBroadcast(broadcast); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not cancel broadcast"}
	}
	return gin.H{"cancelled": id}, nil
}

// DELETE /api/admin/broadcasts/:id
func (b *broadcastController) deleteBroadcast(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid broadcast id"}
	}
	if broadcast, err := db.GetBroadcastByID(id); err == nil && broadcast.IsActive {
		if err := dispatch.CancelBroadcast(broadcast); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not cancel broadcast"}
		}
	}
	if err := db.DeleteBroadcast(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete broadcast"}
	}
	return gin.H{"deleted": id}, nil
}
