package handler

import (
	"errors"
	"io"
	"net/http"

	"restate/internal/filter"
	"restate/internal/model"

	"github.com/gin-gonic/gin"
)

// ComposerHandler drives filter composers over HTTP
type ComposerHandler struct {
	sessions *filter.Sessions
}

// NewComposerHandler creates a new composer handler
func NewComposerHandler(sessions *filter.Sessions) *ComposerHandler {
	return &ComposerHandler{
		sessions: sessions,
	}
}

// Open handles POST /api/v1/composer
func (h *ComposerHandler) Open(c *gin.Context) {
	var req model.ComposerOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, view, err := h.sessions.Open(req.Overrides)
	if err != nil {
		writeComposerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Get handles GET /api/v1/composer/:id
func (h *ComposerHandler) Get(c *gin.Context) {
	h.do(c, func(*filter.Composer) error { return nil })
}

// Close handles DELETE /api/v1/composer/:id
func (h *ComposerHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		writeComposerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset handles POST /api/v1/composer/:id/reset
func (h *ComposerHandler) Reset(c *gin.Context) {
	h.do(c, func(comp *filter.Composer) error { return comp.Reset() })
}

// Apply handles POST /api/v1/composer/:id/apply
func (h *ComposerHandler) Apply(c *gin.Context) {
	h.do(c, func(comp *filter.Composer) error {
		_, err := comp.Apply()
		return err
	})
}

// ToggleType handles POST /api/v1/composer/:id/types/:type/toggle
func (h *ComposerHandler) ToggleType(c *gin.Context) {
	label := c.Param("type")
	h.do(c, func(comp *filter.Composer) error { return comp.ToggleType(label) })
}

// Increment handles POST /api/v1/composer/:id/counters/:counter/increment
func (h *ComposerHandler) Increment(c *gin.Context) {
	counter := c.Param("counter")
	h.do(c, func(comp *filter.Composer) error { return comp.Increment(counter) })
}

// Decrement handles POST /api/v1/composer/:id/counters/:counter/decrement
func (h *ComposerHandler) Decrement(c *gin.Context) {
	counter := c.Param("counter")
	h.do(c, func(comp *filter.Composer) error { return comp.Decrement(counter) })
}

// Layout handles POST /api/v1/composer/:id/sliders/:slider/layout
func (h *ComposerHandler) Layout(c *gin.Context) {
	var req model.SliderLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	slider := c.Param("slider")
	h.do(c, func(comp *filter.Composer) error { return comp.LayoutSlider(slider, req.OriginX, req.Width) })
}

// PointerDown handles POST /api/v1/composer/:id/sliders/:slider/pointer-down
func (h *ComposerHandler) PointerDown(c *gin.Context) {
	var req model.PointerDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	thumb, err := filter.ParseThumb(req.Thumb)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slider := c.Param("slider")
	h.do(c, func(comp *filter.Composer) error { return comp.PointerDown(slider, thumb) })
}

// PointerMove handles POST /api/v1/composer/:id/sliders/:slider/pointer-move
func (h *ComposerHandler) PointerMove(c *gin.Context) {
	var req model.PointerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	slider := c.Param("slider")
	h.do(c, func(comp *filter.Composer) error { return comp.PointerMove(slider, req.X) })
}

// PointerUp handles POST /api/v1/composer/:id/sliders/:slider/pointer-up
func (h *ComposerHandler) PointerUp(c *gin.Context) {
	slider := c.Param("slider")
	h.do(c, func(comp *filter.Composer) error { return comp.PointerUp(slider) })
}

func (h *ComposerHandler) do(c *gin.Context, fn func(*filter.Composer) error) {
	view, err := h.sessions.With(c.Param("id"), fn)
	if err != nil {
		writeComposerError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func writeComposerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filter.ErrComposerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, filter.ErrComposerClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrUnknownPropertyType),
		errors.Is(err, filter.ErrUnknownSlider),
		errors.Is(err, filter.ErrUnknownCounter),
		errors.Is(err, filter.ErrUnknownThumb):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
