package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/control/endpoints"
	authapi "github.com/Nixie-Tech-LLC/argus/internal/http/api/admin/auth/endpoints"
	clientapi "github.com/Nixie-Tech-LLC/argus/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/argus/internal/settings"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, cache *settings.Cache) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
			"X-If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
			"X-Content-ETag",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		// control modules
		adminapi.OrganizationModule(),
		adminapi.ScreenModule(),
		adminapi.BookingModule(),
		adminapi.BroadcastModule(),
		adminapi.ContentModule(),
		adminapi.SettingsModule(cache),
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	// TV endpoints authenticate by device identity, not JWT.
	tv := r.Group("/api/tv")
	clientapi.RegisterPairingRoutes(tv, store)
	clientapi.RegisterPlaylistRoutes(tv, cache)
}
