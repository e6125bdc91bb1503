package handlers

import (
	"net/http"

	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
)

// BroadcastHandler handles the desktop-wide announcement
type BroadcastHandler struct {
	broadcastService *services.BroadcastService
}

// NewBroadcastHandler creates a new broadcast handler
func NewBroadcastHandler(broadcastService *services.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{broadcastService: broadcastService}
}

// BroadcastRequest is the body of broadcast creation; the author comes from
// the created_by query parameter
type BroadcastRequest struct {
	Message string `json:"message" binding:"required"`
	Title   string `json:"title"`
}

// HandleCreateBroadcast handles POST /api/broadcast
func (bh *BroadcastHandler) HandleCreateBroadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	b, err := bh.broadcastService.CreateBroadcast(c.Request.Context(), req.Message, req.Title, c.Query("created_by"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// HandleGetActive handles GET /api/broadcast/active; the body is null when
// nothing is active
func (bh *BroadcastHandler) HandleGetActive(c *gin.Context) {
	b, err := bh.broadcastService.GetActiveBroadcast(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, b)
}

// HandleDismiss handles DELETE /api/broadcast/:id
func (bh *BroadcastHandler) HandleDismiss(c *gin.Context) {
	if err := bh.broadcastService.DismissBroadcast(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Broadcast fermé"})
}
