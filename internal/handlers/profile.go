package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
)

// ProfileHandler keeps the denormalized profile row in sync with the
// session identity.
type ProfileHandler struct {
	profiles repositories.ProfileRepository
}

// NewProfileHandler builds a ProfileHandler.
func NewProfileHandler(profiles repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Sync upserts the caller's profile. Friend lookups by email only find
// accounts that have synced at least once.
func (h *ProfileHandler) Sync(c *gin.Context) {
	profile := models.Profile{
		ID:    c.GetString("userID"),
		Email: c.GetString("userEmail"),
	}

	if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sync profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
