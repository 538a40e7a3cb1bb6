package handlers

import (
	"net/http"

	"golang-food-storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CatalogHandler relays catalog reads to the commerce backend. These routes
// are pure pass-throughs: cookie and path forwarded, body and status
// relayed back.
type CatalogHandler struct {
	catalogService CatalogServiceInterface
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers the catalog relay routes
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	catalog := router.Group("", authMiddleware.SessionOptional())
	{
		catalog.GET("/meals/:meal_id", h.GetMeal)
		catalog.GET("/restaurants/:restaurant_id/meals", h.GetRestaurantMeals)
	}
}

// GetMeal godoc
// @Summary Get a catalog meal
// @Description Relay a single meal record from the commerce backend
// @Tags catalog
// @Produce json
// @Failure 502 {object} ErrorResponse
// @Router /meals/{meal_id} [get]
func (h *CatalogHandler) GetMeal(c *gin.Context) {
	mealID := c.Param("meal_id")
	sessionToken := middleware.GetSessionToken(c)

	status, body, err := h.catalogService.RelayMeal(c.Request.Context(), sessionToken, mealID)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to reach catalog",
			Message: err.Error(),
		})
		return
	}

	c.Data(status, "application/json", body)
}

// GetRestaurantMeals godoc
// @Summary List a restaurant's meals
// @Description Relay a restaurant menu listing from the commerce backend
// @Tags catalog
// @Produce json
// @Failure 502 {object} ErrorResponse
// @Router /restaurants/{restaurant_id}/meals [get]
func (h *CatalogHandler) GetRestaurantMeals(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	sessionToken := middleware.GetSessionToken(c)

	status, body, err := h.catalogService.RelayRestaurantMeals(c.Request.Context(), sessionToken, restaurantID)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to reach catalog",
			Message: err.Error(),
		})
		return
	}

	c.Data(status, "application/json", body)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
