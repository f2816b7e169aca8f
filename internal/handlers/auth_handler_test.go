package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentorportal/mentor-portal-api/internal/handlers"
	"github.com/mentorportal/mentor-portal-api/internal/middleware"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testSession() *models.MentorSession {
	return &models.MentorSession{
		Email: "jane@example.org",
		Name:  "Jane Smith",
	}
}

func expectCookieSetup(svc *MockAuthService) {
	svc.On("GetSessionTTL").Return(86400)
	svc.On("GetCookieDomain").Return("")
	svc.On("GetCookieSecure").Return(false)
}

func authRouter(svc *MockAuthService) *gin.Engine {
	handler := handlers.NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/v1/auth/request-login", handler.RequestLogin)
	router.GET("/auth/callback", handler.Callback)
	router.POST("/api/v1/auth/verify", handler.VerifyLogin)
	router.POST("/api/v1/auth/preview", handler.PreviewLogin)
	router.POST("/api/v1/auth/logout", handler.Logout)
	return router
}

func TestRequestLogin_Success(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("RequestLogin", mock.Anything, "jane@example.org").
		Return(&models.RequestLoginResponse{Success: true, Message: "sent"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/request-login",
		strings.NewReader(`{"email":"jane@example.org"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestRequestLogin_InvalidEmail(t *testing.T) {
	svc := new(MockAuthService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/request-login",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RequestLogin", mock.Anything, mock.Anything)
}

func TestRequestLogin_UnknownEmail(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("RequestLogin", mock.Anything, "nobody@example.org").
		Return(nil, services.ErrMentorNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/request-login",
		strings.NewReader(`{"email":"nobody@example.org"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallback_SetsCookieAndRedirects(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("VerifyMagicLink", mock.Anything, "good-token").
		Return(testSession(), "signed-jwt", nil)
	expectCookieSetup(svc)

	w := httptest.NewRecorder()
	authRouter(svc).ServeHTTP(w, httptest.NewRequest("GET", "/auth/callback?token=good-token", http.NoBody))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"), "token must not survive the redirect")

	cookies := w.Header().Values("Set-Cookie")
	assert.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], middleware.SessionCookieName+"=signed-jwt")
}

func TestCallback_ExpiredToken(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("VerifyMagicLink", mock.Anything, "stale-token").
		Return(nil, "", services.ErrLinkInvalid)

	w := httptest.NewRecorder()
	authRouter(svc).ServeHTTP(w, httptest.NewRequest("GET", "/auth/callback?token=stale-token", http.NoBody))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?login_error=expired", w.Header().Get("Location"))
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestVerifyLogin_Success(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("VerifyMagicLink", mock.Anything, "good-token").
		Return(testSession(), "signed-jwt", nil)
	expectCookieSetup(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/verify",
		strings.NewReader(`{"token":"good-token"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.org")
}

func TestVerifyLogin_InvalidToken(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("VerifyMagicLink", mock.Anything, "bad-token").
		Return(nil, "", services.ErrLinkInvalid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/verify",
		strings.NewReader(`{"token":"bad-token"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreviewLogin_Success(t *testing.T) {
	svc := new(MockAuthService)
	preview := testSession()
	preview.IsPreview = true
	svc.On("PreviewLogin", mock.Anything, "jane@example.org", "admin-key").
		Return(preview, "signed-jwt", nil)
	expectCookieSetup(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/preview",
		strings.NewReader(`{"preview_email":"jane@example.org","admin_key":"admin-key"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPreview":true`)
}

func TestPreviewLogin_WrongKey(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("PreviewLogin", mock.Anything, "jane@example.org", "wrong").
		Return(nil, "", services.ErrInvalidAdminKey)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/preview",
		strings.NewReader(`{"preview_email":"jane@example.org","admin_key":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("GetCookieDomain").Return("")
	svc.On("GetCookieSecure").Return(false)

	w := httptest.NewRecorder()
	authRouter(svc).ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/auth/logout", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Header().Values("Set-Cookie")
	assert.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "Max-Age=0")
}
