package handlers

import (
	"net/http"

	"golang-food-storefront/internal/middleware"
	"golang-food-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService     CartServiceInterface
	catalogService  CatalogServiceInterface
	checkoutService CheckoutServiceInterface
	loginURL        string
}

func NewCartHandler(
	cartService CartServiceInterface,
	catalogService CatalogServiceInterface,
	checkoutService CheckoutServiceInterface,
	loginURL string,
) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		catalogService:  catalogService,
		checkoutService: checkoutService,
		loginURL:        loginURL,
	}
}

// RegisterRoutes registers the routes for cart management. Anonymous
// shoppers can mutate a cart; only the checkout gate cares about sessions.
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	cart := router.Group("/cart", authMiddleware.DeviceRequired(), authMiddleware.SessionOptional())
	{
		// Get the device's cart with derived totals
		cart.GET("", h.GetCart)
		// Add a catalog meal to the cart
		cart.POST("/items", h.AddToCart)
		// Set a line's quantity (zero or below removes it)
		cart.PUT("/items/:item_id", h.UpdateCartItem)
		// Remove a line
		cart.DELETE("/items/:item_id", h.RemoveFromCart)
		// Clear cart
		cart.DELETE("", h.ClearCart)
		// Run the checkout gate and hand the order to the backend
		cart.POST("/checkout", h.Checkout)
	}
}

// GetCart godoc
// @Summary Get the current cart
// @Description Get the device's cart entries and derived totals
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	cart := h.cartService.GetCart(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, cart)
}

// AddToCart godoc
// @Summary Add a meal to the cart
// @Description Fetch the meal from the catalog and add it to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Meal and quantity"
// @Success 200 {object} services.AddToCartResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	deviceID := middleware.GetDeviceID(c)
	sessionToken := middleware.GetSessionToken(c)

	result, err := h.catalogService.AddMealToCart(c.Request.Context(), deviceID, sessionToken, req.MealID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to add item to cart",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCartItem godoc
// @Summary Set a cart line's quantity
// @Description Absolute quantity set; zero or below removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param item body UpdateCartItemRequest true "New quantity"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{item_id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	deviceID := middleware.GetDeviceID(c)
	cart := h.cartService.UpdateItem(c.Request.Context(), deviceID, itemID, *req.Quantity)
	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart godoc
// @Summary Remove a line from the cart
// @Description Removing an absent line is a no-op, not an error
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Router /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	itemID := c.Param("item_id")
	deviceID := middleware.GetDeviceID(c)

	cart := h.cartService.RemoveItem(c.Request.Context(), deviceID, itemID)
	c.JSON(http.StatusOK, cart)
}

// ClearCart godoc
// @Summary Clear the cart
// @Tags cart
// @Success 204 "No Content"
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	h.cartService.ClearCart(c.Request.Context(), deviceID)
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Check out the cart
// @Description Run the checkout gate and hand the order to the commerce backend
// @Tags cart
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Success 204 "Empty cart"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} services.GateResult
// @Failure 502 {object} ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	sessionToken := middleware.GetSessionToken(c)
	userID := middleware.GetUserID(c)
	authenticated := middleware.IsAuthenticated(c)

	result, err := h.checkoutService.Checkout(c.Request.Context(), deviceID, sessionToken, userID, authenticated)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to checkout",
			Message: err.Error(),
		})
		return
	}

	switch result.Gate.Status {
	case services.GateLoginRequired:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Login required",
			"login_url": h.loginURL,
		})
	case services.GateEmptyCart:
		// Silent abort, nothing to check out.
		c.Status(http.StatusNoContent)
	case services.GateMultipleRestaurants:
		c.JSON(http.StatusConflict, result.Gate)
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Request and Response structs
type AddToCartRequest struct {
	MealID   string `json:"meal_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1"`
}

// Quantity is a pointer so an explicit zero (remove the line) still binds
// while an absent field is rejected instead of silently removing.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ErrorResponse is defined in catalog_handler.go
