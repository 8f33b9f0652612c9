package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

type orgController struct{}

// OrganizationModule mounts authenticated /organizations endpoints.
func OrganizationModule() api.Module {
	ctl := &orgController{}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/organizations", 				ctl.listOrganizations)
		c.POST("/organizations", 				ctl.createOrganization)
		c.GET("/organizations/:id/screens", 	ctl.listOrganizationScreens)
	})
}

// GET /api/admin/organizations
func (o *orgController) listOrganizations(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := db.ListOrganizations()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list organizations"}
	}
	return all, nil
}

// POST /api/admin/organizations
func (o *orgController) createOrganization(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	org, err := db.CreateOrganization(request.Name, request.City, request.Country, request.IsPaid)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create organization"}
	}
	return org, nil
}

// GET /api/admin/organizations/:id/screens
func (o *orgController) listOrganizationScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid organization id"}
	}
	screens, err := db.ListScreensByOrganization(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screens"}
	}
	return screens, nil
}
