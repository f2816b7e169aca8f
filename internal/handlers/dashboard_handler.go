package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorportal/mentor-portal-api/internal/middleware"
	"github.com/mentorportal/mentor-portal-api/internal/services"
)

// DashboardHandler serves the mentor dashboard read endpoints. All routes
// require a valid session; the mentor identity always comes from the session,
// never from the request.
type DashboardHandler struct {
	service services.DashboardServiceInterface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// GetStudents handles GET /api/v1/students[?confirmed=true]
func (h *DashboardHandler) GetStudents(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	confirmedOnly := c.Query("confirmed") == "true"

	resp, err := h.service.GetStudents(c.Request.Context(), session.Name, confirmedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load students"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudentDeadlines handles GET /api/v1/students/:name/deadlines
func (h *DashboardHandler) GetStudentDeadlines(c *gin.Context) {
	if _, err := middleware.GetSession(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	studentName := c.Param("name")
	if studentName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student name is required"})
		return
	}

	resp, err := h.service.GetStudentDeadlines(c.Request.Context(), studentName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadlines"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudentSubmissions handles GET /api/v1/students/:name/submissions
func (h *DashboardHandler) GetStudentSubmissions(c *gin.Context) {
	if _, err := middleware.GetSession(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	studentName := c.Param("name")
	if studentName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student name is required"})
		return
	}

	resp, err := h.service.GetStudentSubmissions(c.Request.Context(), studentName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/v1/refresh
// Flushes the lookup cache so the next dashboard load hits Airtable
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if _, err := middleware.GetSession(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, h.service.Refresh())
}
