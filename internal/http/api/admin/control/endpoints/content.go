package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

type contentController struct{}

// ContentModule mounts screen-owned content endpoints: internal content,
// fillers and ad-sales material.
func ContentModule() api.Module {
	ctl := &contentController{}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens/:id/internal_content", 	ctl.listInternalContent)
		c.POST("/screens/:id/internal_content", ctl.createInternalContent)
		c.PUT("/internal_content/:id/active", 	ctl.setInternalContentActive)
		c.DELETE("/internal_content/:id", 		ctl.deleteInternalContent)

		c.GET("/screens/:id/fillers", 	ctl.listFillers)
		c.POST("/screens/:id/fillers", 	ctl.createFiller)
		c.PUT("/fillers/:id/active", 	ctl.setFillerActive)
		c.DELETE("/fillers/:id", 		ctl.deleteFiller)

		c.GET("/screens/:id/ad_sales", 	ctl.listAdSales)
		c.POST("/screens/:id/ad_sales", ctl.createAdSales)
		c.DELETE("/ad_sales/:id", 		ctl.deleteAdSales)
	})
}

func refreshScreenByID(screenID int) {
	if screen, err := db.GetScreenByID(screenID); err == nil {
		middleware.RefreshScreen(screen.DeviceID)
	}
}

// @ INTERNAL CONTENT

// GET /api/admin/screens/:id/internal_content
func (cc *contentController) listInternalContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	content, err := db.ListInternalContentForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list content"}
	}
	return content, nil
}

// POST /api/admin/screens/:id/internal_content
func (cc *contentController) createInternalContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreateInternalContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := db.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if !screen.SupportsContentType(request.Type) {
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

	content, err := db.CreateInternalContent(id, request.Name, request.URL, request.Type,
		request.DurationSeconds, request.Priority, startDate, endDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create content"}
	}

	refreshScreenByID(id)
	return content, nil
}

// PUT /api/admin/internal_content/:id/active
func (cc *contentController) setInternalContentActive(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid content id"}
	}
	var request packets.SetContentActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := db.SetInternalContentActive(id, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content"}
	}
	return gin.H{"id": id, "is_active": request.IsActive}, nil
}

// DELETE /api/admin/internal_content/:id
func (cc *contentController) deleteInternalContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid content id"}
	}
	if err := db.DeleteInternalContent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return gin.H{"deleted": id}, nil
}

// @ FILLERS

// GET /api/admin/screens/:id/fillers
func (cc *contentController) listFillers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	fillers, err := db.ListFillersForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list fillers"}
	}
	return fillers, nil
}

// POST /api/admin/screens/:id/fillers
func (cc *contentController) createFiller(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreateFillerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	filler, err := db.CreateFiller(id, request.Name, request.URL, request.Type, request.DurationSeconds)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create filler"}
	}

	refreshScreenByID(id)
	return filler, nil
}

// PUT /api/admin/fillers/:id/active
func (cc *contentController) setFillerActive(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid filler id"}
	}
	var request packets.SetContentActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := db.SetFillerActive(id, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update filler"}
	}
	return gin.H{"id": id, "is_active": request.IsActive}, nil
}

// DELETE /api/admin/fillers/:id
func (cc *contentController) deleteFiller(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid filler id"}
	}
	if err := db.DeleteFiller(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete filler"}
	}
	return gin.H{"deleted": id}, nil
}

// @ AD SALES

// GET /api/admin/screens/:id/ad_sales
func (cc *contentController) listAdSales(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	content, err := db.ListAdSalesContentForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list ad sales content"}
	}
	return content, nil
}

// POST /api/admin/screens/:id/ad_sales
func (cc *contentController) createAdSales(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	var request packets.CreateAdSalesContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startDate, err := parseDate(request.StartDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_date"}
	}
	endDate, err := parseDate(request.EndDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_date"}
	}

	content, err := db.CreateAdSalesContent(id, request.Name, request.URL, request.Type,
		request.DurationSeconds, startDate, endDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create ad sales content"}
	}

	refreshScreenByID(id)
	return content, nil
}

// DELETE /api/admin/ad_sales/:id
func (cc *contentController) deleteAdSales(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid content id"}
	}
	if err := db.DeleteAdSalesContent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete ad sales content"}
	}
	return gin.H{"deleted": id}, nil
}
