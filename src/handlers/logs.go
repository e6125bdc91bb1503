package handlers

import (
	"net/http"

	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
)

// LogHandler exposes the login audit trail
type LogHandler struct {
	auditService *services.AuditLogService
}

// NewLogHandler creates a new log handler
func NewLogHandler(auditService *services.AuditLogService) *LogHandler {
	return &LogHandler{auditService: auditService}
}

// HandleListLogs handles GET /api/logs
func (lh *LogHandler) HandleListLogs(c *gin.Context) {
	logs, err := lh.auditService.ListLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// HandleClearLogs handles DELETE /api/logs
func (lh *LogHandler) HandleClearLogs(c *gin.Context) {
	deleted, err := lh.auditService.ClearLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Journaux effacés",
		"deleted": deleted,
	})
}
