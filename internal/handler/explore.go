package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"restate/internal/model"
	"restate/internal/service"

	"github.com/gin-gonic/gin"
)

// ExploreHandler exposes the explore screen view-model
type ExploreHandler struct {
	screen *service.ExploreScreen
}

// NewExploreHandler creates a new explore handler
func NewExploreHandler(screen *service.ExploreScreen) *ExploreHandler {
	return &ExploreHandler{
		screen: screen,
	}
}

// Get handles GET /api/v1/explore
func (h *ExploreHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.screen.State())
}

// SetParams handles PUT /api/v1/explore/params.
// Query changes are debounced; a filter change applies immediately.
func (h *ExploreHandler) SetParams(c *gin.Context) {
	var req model.ListingParams
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Filter != h.screen.Params().Filter {
		h.screen.SetFilter(req.Filter)
	}
	// compare against what was typed last, not what was committed
	if req.Query != h.screen.SearchText() {
		h.screen.SetSearch(req.Query)
	}

	c.JSON(http.StatusAccepted, h.screen.State())
}

// Refresh handles POST /api/v1/explore/refresh
func (h *ExploreHandler) Refresh(c *gin.Context) {
	done := h.screen.Refetch()
	select {
	case <-done:
	case <-c.Request.Context().Done():
		return
	}
	c.JSON(http.StatusOK, h.screen.State())
}

// Stream handles GET /api/v1/explore/stream - SSE of state changes
func (h *ExploreHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}

	updates, stop := h.screen.Watch()
	defer stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case state, ok := <-updates:
			if !ok {
				sendSSE(c, "done", nil)
				flusher.Flush()
				return
			}
			sendSSE(c, "state", state)
			flusher.Flush()
		}
	}
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
