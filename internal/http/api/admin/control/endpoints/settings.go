package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/settings"
)

type settingsController struct {
	cache *settings.Cache
}

// SettingsModule mounts scheduler tunables. Writes invalidate the shared
// cache so playlist builds see the new value on the next poll.
func SettingsModule(cache *settings.Cache) api.Module {
	ctl := &settingsController{cache: cache}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings/:key", ctl.getSetting)
		c.PUT("/settings/:key", ctl.putSetting)
	})
}

// GET /api/admin/settings/:key
func (s *settingsController) getSetting(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	value, err := db.GetSetting(key)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read setting"}
	}
	return gin.H{"key": key, "value": value}, nil
}

// PUT /api/admin/settings/:key
func (s *settingsController) putSetting(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	var request packets.UpdateSettingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := db.SetSetting(key, request.Value); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not write setting"}
	}
	settings.DropShared(key)
	s.cache.Invalidate(key)

	return gin.H{"key": key, "value": request.Value}, nil
}
