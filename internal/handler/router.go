package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler mounted by the router
type Handlers struct {
	Properties *PropertyHandler
	Filters    *FilterHandler
	Composer   *ComposerHandler
	Explore    *ExploreHandler
}

// RegisterRoutes mounts the API under /api/v1
func RegisterRoutes(router *gin.Engine, h Handlers) {
	apiV1 := router.Group("/api/v1")
	{
		// Applied filters
		apiV1.GET("/filters", h.Filters.Get)
		apiV1.PUT("/filters", h.Filters.Replace)
		apiV1.GET("/filters/options", h.Filters.Options)

		// Filter composer
		composer := apiV1.Group("/composer")
		composer.POST("", h.Composer.Open)
		composer.GET("/:id", h.Composer.Get)
		composer.DELETE("/:id", h.Composer.Close)
		composer.POST("/:id/reset", h.Composer.Reset)
		composer.POST("/:id/apply", h.Composer.Apply)
		composer.POST("/:id/types/:type/toggle", h.Composer.ToggleType)
		composer.POST("/:id/counters/:counter/increment", h.Composer.Increment)
		composer.POST("/:id/counters/:counter/decrement", h.Composer.Decrement)
		composer.POST("/:id/sliders/:slider/layout", h.Composer.Layout)
		composer.POST("/:id/sliders/:slider/pointer-down", h.Composer.PointerDown)
		composer.POST("/:id/sliders/:slider/pointer-move", h.Composer.PointerMove)
		composer.POST("/:id/sliders/:slider/pointer-up", h.Composer.PointerUp)

		// Properties
		apiV1.GET("/properties", h.Properties.List)
		apiV1.GET("/properties/:id", h.Properties.Get)

		// Explore screen
		apiV1.GET("/explore", h.Explore.Get)
		apiV1.PUT("/explore/params", h.Explore.SetParams)
		apiV1.POST("/explore/refresh", h.Explore.Refresh)
		apiV1.GET("/explore/stream", h.Explore.Stream)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})
}
