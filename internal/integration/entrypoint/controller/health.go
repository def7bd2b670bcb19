// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness of the API and its database.
type HealthController struct {
	checkDB func() bool
}

// HealthResponse is the body returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. checkDB
// should ping the database and report reachability.
func NewHealthController(checkDB func() bool) *HealthController {
	return &HealthController{checkDB: checkDB}
}

// Check handles GET /health. The endpoint always answers 200; an unreachable
// database is reported in the body rather than through the status code.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.checkDB != nil && h.checkDB() {
		dbStatus = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
