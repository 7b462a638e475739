package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"secret-pages-service/internal/auth"
	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
	"secret-pages-service/internal/telemetry"
)

// AuthHandler manages registration, login and account lifecycle.
type AuthHandler struct {
	accounts repositories.AccountRepository
	tokens   *auth.TokenService
	emitter  *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(accounts repositories.AccountRepository, tokens *auth.TokenService, emitter *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, emitter: emitter}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates an account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), models.Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}

	token, err := h.tokens.Issue(account.ID, account.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "account.registered", "INFO", "account registered", requestIDFromContext(c), &account.ID)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": account.ID, "email": account.Email},
	})
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}

	if !auth.VerifyPassword(req.Password, account.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(account.ID, account.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": account.ID, "email": account.Email},
	})
}

// Me returns the session identity.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    c.GetString("userID"),
		"email": c.GetString("userEmail"),
	})
}

// DeleteAccount removes the account and everything attached to it.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.accounts.Delete(c.Request.Context(), userID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrAccountNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not delete account"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "account.deleted", "WARN", "account deleted", requestIDFromContext(c), &userID)
	c.Status(http.StatusNoContent)
}
