package handler

import (
	"net/http"

	"restate/internal/filter"
	"restate/internal/model"
	"restate/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property list and detail requests
type PropertyHandler struct {
	listings *service.ListingService
	store    *filter.Store
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(listings *service.ListingService, store *filter.Store) *PropertyHandler {
	return &PropertyHandler{
		listings: listings,
		store:    store,
	}
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var params model.ListingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.listings.List(c.Request.Context(), h.store.Get(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.listings.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}

	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}
