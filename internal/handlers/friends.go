package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secret-pages-service/internal/observability"
	"secret-pages-service/internal/social"
	"secret-pages-service/internal/telemetry"
)

// FriendsHandler exposes the friendship graph: friend list with shared
// messages, incoming requests, sending and accepting requests.
type FriendsHandler struct {
	service *social.Service
	emitter *telemetry.AuditEmitter
}

// NewFriendsHandler builds a FriendsHandler.
func NewFriendsHandler(service *social.Service, emitter *telemetry.AuditEmitter) *FriendsHandler {
	return &FriendsHandler{service: service, emitter: emitter}
}

// List returns the caller's accepted friends with their messages.
// Friends without a message carry "message": null.
func (h *FriendsHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	friends, err := h.service.ListFriendsAndMessages(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load friends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListRequests returns pending incoming friend requests.
func (h *FriendsHandler) ListRequests(c *gin.Context) {
	userID := c.GetString("userID")

	requests, err := h.service.ListIncomingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load friend requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SendRequest sends a friend request to the user behind the given email.
func (h *FriendsHandler) SendRequest(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	edge, err := h.service.SendFriendRequest(c.Request.Context(), userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrEmptyEmail):
			observability.IncFriendRequest("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		case errors.Is(err, social.ErrUserNotFound):
			observability.IncFriendRequest("not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, social.ErrSelfRequest):
			observability.IncFriendRequest("self")
			c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot add yourself as a friend"})
		case errors.Is(err, social.ErrDuplicateRequest):
			observability.IncFriendRequest("duplicate")
			c.JSON(http.StatusConflict, gin.H{"error": "friend request already exists or you are already friends"})
		default:
			observability.IncFriendRequest("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send friend request"})
		}
		return
	}

	observability.IncFriendRequest("sent")
	h.emitter.Emit(c.Request.Context(), "friend.request.sent", "INFO", "friend request sent", requestIDFromContext(c), &userID)
	c.JSON(http.StatusCreated, gin.H{"status": "friend request sent", "request": edge})
}

// AcceptRequest accepts a pending request from the given requester.
func (h *FriendsHandler) AcceptRequest(c *gin.Context) {
	requesterID := c.Param("requester_id")
	if requesterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requester id"})
		return
	}

	userID := c.GetString("userID")
	if err := h.service.AcceptFriendRequest(c.Request.Context(), userID, requesterID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not accept friend request"})
		return
	}

	observability.IncFriendAccept()
	h.emitter.Emit(c.Request.Context(), "friend.request.accepted", "INFO", "friend request accepted", requestIDFromContext(c), &userID)
	c.JSON(http.StatusOK, gin.H{"status": "friend request accepted"})
}
