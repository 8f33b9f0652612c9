package endpoints

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func TestScreenResponseCarriesAllFields(t *testing.T) {
	loc := "lobby"
	w, h := 1920, 1080
	created := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	resp := screenResponse(model.Screen{
		ID:                    4,
		OrganizationID:        2,
		Name:                  "Lobby East",
		Location:              &loc,
		ResolutionWidth:       &w,
		ResolutionHeight:      &h,
		SupportedContentTypes: []string{"image", "video"},
		SecurityBufferMinutes: 30,
		Mode:                  model.ScreenModeStandard,
		IsActive:              true,
		CreatedAt:             created,
		UpdatedAt:             created,
	})

	assert.Equal(t, 4, resp.ID)
	assert.Equal(t, &w, resp.ResolutionWidth)
	assert.Equal(t, &h, resp.ResolutionHeight)
	assert.Equal(t, []string{"image", "video"}, resp.SupportedContentTypes)
	assert.Equal(t, "2026-09-10T08:00:00Z", resp.CreatedAt)
}
