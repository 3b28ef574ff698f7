package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

func TestHandleUpdateProfile_OK(t *testing.T) {
	usersMock := new(userServiceMock)
	usersMock.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(params services.UpdateProfileParams) bool {
		return params.UserID == testUserID &&
			params.Username == "alice2" &&
			params.Email == "alice2@example.com" &&
			params.Password == nil
	})).Return(
		&models.User{ID: testUserID, Username: "alice2", Email: "alice2@example.com"},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, usersMock, nil, nil)

	router := gin.New()
	router.PUT("/api/v1/profile", identifyTestUser, handler.HandleUpdateProfile)

	body := `{"username":"alice2","email":"alice2@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, testUserID, got.ID)
	require.Equal(t, "alice2", got.Username)
	require.Equal(t, "alice2@example.com", got.Email)

	usersMock.AssertExpectations(t)
}

func TestHandleUpdateProfile_PasswordForwardedWhenSupplied(t *testing.T) {
	usersMock := new(userServiceMock)
	usersMock.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(params services.UpdateProfileParams) bool {
		return params.Password != nil && *params.Password == "correcthorse"
	})).Return(
		&models.User{ID: testUserID, Username: "alice", Email: "alice@example.com"},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, usersMock, nil, nil)

	router := gin.New()
	router.PUT("/api/v1/profile", identifyTestUser, handler.HandleUpdateProfile)

	body := `{"username":"alice","email":"alice@example.com","password":"correcthorse"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	usersMock.AssertExpectations(t)
}

func TestHandleUpdateProfile_DuplicateIdentity(t *testing.T) {
	usersMock := new(userServiceMock)
	usersMock.On("UpdateProfile", mock.Anything, mock.Anything).Return(
		nil, services.ErrIdentityTaken,
	).Once()
	handler := newTestHandler(nil, nil, usersMock, nil, nil)

	router := gin.New()
	router.PUT("/api/v1/profile", identifyTestUser, handler.HandleUpdateProfile)

	body := `{"username":"bob","email":"bob@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	usersMock.AssertExpectations(t)
}

func TestHandleDeleteProfile(t *testing.T) {
	usersMock := new(userServiceMock)
	usersMock.On("DeleteAccount", mock.Anything, testUserID).Return(nil).Once()
	handler := newTestHandler(nil, nil, usersMock, nil, nil)

	router := gin.New()
	router.DELETE("/api/v1/profile", identifyTestUser, handler.HandleDeleteProfile)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	usersMock.AssertExpectations(t)
}
