package handler

import (
	"errors"
	"net/http"

	"restate/internal/filter"
	"restate/internal/model"

	"github.com/gin-gonic/gin"
)

// FilterHandler exposes the applied filters
type FilterHandler struct {
	store  *filter.Store
	bounds model.FilterBounds
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(store *filter.Store, bounds model.FilterBounds) *FilterHandler {
	return &FilterHandler{
		store:  store,
		bounds: bounds,
	}
}

// Get handles GET /api/v1/filters
func (h *FilterHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Replace handles PUT /api/v1/filters
func (h *FilterHandler) Replace(c *gin.Context) {
	var req model.FilterShape
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	filters, err := req.Normalize(h.bounds)
	if err != nil {
		if errors.Is(err, model.ErrUnknownPropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.store.Replace(filters)
	c.JSON(http.StatusOK, filters)
}

// Options handles GET /api/v1/filters/options
func (h *FilterHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, model.FilterOptions{
		Bounds:        h.bounds,
		Defaults:      model.DefaultFilters(),
		PropertyTypes: model.PropertyTypes,
		CounterMin:    model.CounterMin,
		CounterMax:    model.CounterMax,
		PriceUnit:     model.PriceUnit,
	})
}
