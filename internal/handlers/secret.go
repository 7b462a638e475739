package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"secret-pages-service/internal/observability"
	"secret-pages-service/internal/repositories"
)

// defaultSecretMessage is shown to accounts that have not saved a
// message yet.
const defaultSecretMessage = "Default secret message visible only to users!"

// SecretHandler manages the caller's own secret message.
type SecretHandler struct {
	messages repositories.SecretMessageRepository
}

// NewSecretHandler builds a SecretHandler.
func NewSecretHandler(messages repositories.SecretMessageRepository) *SecretHandler {
	return &SecretHandler{messages: messages}
}

// Get returns the caller's message, falling back to the default
// placeholder when none exists. The absent case is not an error.
func (h *SecretHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	msg, err := h.messages.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSecretMessageNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": defaultSecretMessage, "default": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg.Message, "default": false, "updated_at": msg.UpdatedAt})
}

// Save upserts the caller's message.
func (h *SecretHandler) Save(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message cannot be empty"})
		return
	}

	userID := c.GetString("userID")
	msg, err := h.messages.Upsert(c.Request.Context(), userID, message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save message"})
		return
	}

	observability.IncSecretMessageSave()
	c.JSON(http.StatusOK, msg)
}
