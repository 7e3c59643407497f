package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/furnistore/backend/internal/service"
)

// Handler exposes the storefront services as JSON endpoints.
type Handler struct {
	catalog    *service.CatalogService
	cart       *service.CartService
	categories *service.CategoryService
	auth       *service.AuthService
}

func NewHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	categories *service.CategoryService,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		catalog:    catalog,
		cart:       cart,
		categories: categories,
		auth:       auth,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	products := api.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/featured", h.getFeaturedProducts)
	products.GET("/search", h.searchProducts)
	products.GET("/category/:categoryId", h.getProductsByCategory)
	products.GET("/:id", h.getProduct)

	categories := api.Group("/categories")
	categories.GET("", h.getAllCategories)
	categories.GET("/active", h.getActiveCategories)
	categories.GET("/:id", h.getCategory)

	cart := api.Group("/cart")
	cart.GET("/:sessionId", h.getCart)
	cart.POST("/add", h.addToCart)
	cart.PUT("/update", h.updateCartItem)
	cart.DELETE("/remove/:cartItemId", h.removeFromCart)
	cart.DELETE("/clear/:sessionId", h.clearCart)

	auth := api.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/validate", h.validateToken)
}

// listProducts serves both the plain listing and the filtered/paged one:
// any filter or paging parameter switches to the paged response shape.
func (h *Handler) listProducts(c *gin.Context) {
	filter, hasFilter, err := parseProductFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if hasFilter {
		page, err := h.catalog.ListProducts(c.Request.Context(), filter)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	products, err := h.catalog.GetAllProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) getProductsByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	products, err := h.catalog.GetProductsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) searchProducts(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search term cannot be empty"})
		return
	}

	products, err := h.catalog.SearchProducts(c.Request.Context(), term)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getFeaturedProducts(c *gin.Context) {
	products, err := h.catalog.GetFeaturedProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getAllCategories(c *gin.Context) {
	categories, err := h.categories.GetAllCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) getActiveCategories(c *gin.Context) {
	categories, err := h.categories.GetActiveCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	category, err := h.categories.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) getCart(c *gin.Context) {
	cart, _, err := h.cart.GetCart(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addToCartRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	ProductID int64  `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cart.AddToCart(c.Request.Context(), req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type updateCartItemRequest struct {
	CartItemID int64 `json:"cartItemId" binding:"required"`
	Quantity   int   `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.cart.UpdateCartItem(c.Request.Context(), req.CartItemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found or was removed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) removeFromCart(c *gin.Context) {
	cartItemID, err := strconv.ParseInt(c.Param("cartItemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	removed, err := h.cart.RemoveFromCart(c.Request.Context(), cartItemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.cart.ClearCart(c.Request.Context(), c.Param("sessionId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type validateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *Handler) validateToken(c *gin.Context) {
	var req validateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	valid := h.auth.ValidateToken(req.Token)
	resp := gin.H{"valid": valid}
	if valid {
		resp["username"] = h.auth.UsernameFromToken(req.Token)
	}
	c.JSON(http.StatusOK, resp)
}

// parseProductFilter reads filter/paging query params. The second return
// value reports whether any were supplied at all.
func parseProductFilter(c *gin.Context) (service.ProductFilter, bool, error) {
	var filter service.ProductFilter
	hasFilter := false

	if raw, ok := c.GetQuery("categoryId"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, false, errors.New("invalid categoryId")
		}
		filter.CategoryID = &id
		hasFilter = true
	}
	if raw, ok := c.GetQuery("searchTerm"); ok {
		filter.SearchTerm = raw
		hasFilter = true
	}
	if raw, ok := c.GetQuery("minPrice"); ok {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, false, errors.New("invalid minPrice")
		}
		filter.MinPrice = &price
		hasFilter = true
	}
	if raw, ok := c.GetQuery("maxPrice"); ok {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, false, errors.New("invalid maxPrice")
		}
		filter.MaxPrice = &price
		hasFilter = true
	}
	if raw, ok := c.GetQuery("pageNumber"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, false, errors.New("pageNumber must be a positive integer")
		}
		filter.PageNumber = n
		hasFilter = true
	}
	if raw, ok := c.GetQuery("pageSize"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, false, errors.New("pageSize must be a positive integer")
		}
		filter.PageSize = n
		hasFilter = true
	}

	return filter, hasFilter, nil
}

// respondError maps service failures to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptySession),
		errors.Is(err, service.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("Request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
