package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"secret-pages-service/internal/mocks"
	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
)

func setupSecretRouter(messages *mocks.SecretMessageRepositoryMock, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})

	handler := NewSecretHandler(messages)
	router.GET("/secret-message", handler.Get)
	router.PUT("/secret-message", handler.Save)
	return router
}

func TestGetSecretMessage(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("GetByUserID", mock.Anything, "alice").Return(models.SecretMessage{
		UserID: "alice", Message: "my secret", UpdatedAt: time.Now(),
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/secret-message", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"my secret"`)
	assert.Contains(t, rec.Body.String(), `"default":false`)
	messages.AssertExpectations(t)
}

func TestGetSecretMessageFallsBackToDefault(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("GetByUserID", mock.Anything, "alice").Return(models.SecretMessage{}, repositories.ErrSecretMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/secret-message", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Not having saved a message yet is a normal state, not an error.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), defaultSecretMessage)
	assert.Contains(t, rec.Body.String(), `"default":true`)
}

func TestGetSecretMessageStoreError(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("GetByUserID", mock.Anything, "alice").Return(models.SecretMessage{}, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/secret-message", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSaveSecretMessage(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("Upsert", mock.Anything, "alice", "hello friends").Return(models.SecretMessage{
		UserID: "alice", Message: "hello friends", UpdatedAt: time.Now(),
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/secret-message", strings.NewReader(`{"message":"hello friends"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hello friends"`)
	messages.AssertExpectations(t)
}

func TestSaveSecretMessageTrimsWhitespace(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("Upsert", mock.Anything, "alice", "hello").Return(models.SecretMessage{
		UserID: "alice", Message: "hello",
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/secret-message", strings.NewReader(`{"message":"  hello  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messages.AssertExpectations(t)
}

func TestSaveSecretMessageRejectsBlank(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	for _, body := range []string{`{}`, `{"message":"   "}`} {
		req := httptest.NewRequest(http.MethodPut, "/secret-message", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
	messages.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveSecretMessageStoreError(t *testing.T) {
	messages := new(mocks.SecretMessageRepositoryMock)
	router := setupSecretRouter(messages, "alice")

	messages.On("Upsert", mock.Anything, "alice", "hello").Return(models.SecretMessage{}, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodPut, "/secret-message", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
